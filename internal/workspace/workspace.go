// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace runs the math delimiter conversion over documents: one
// document at a time (the current document) or every document in a
// workspace directory.
package workspace

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/mathconv/internal/ledger"
	"github.com/pdiddy/mathconv/pkg/types"
)

// Converter transforms document text. *mathconv.Converter implements it.
type Converter interface {
	Convert(text string) string
}

// Ledger records conversions and reports when a document was last
// converted. *ledger.Ledger implements it.
type Ledger interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
	LastModTime(ctx context.Context, path string) (time.Time, bool, error)
}

// Options control a conversion run.
type Options struct {
	// DryRun converts documents but never writes them.
	DryRun bool

	// Incremental skips documents whose modification time matches the
	// ledger's record of their last conversion. Requires a Ledger.
	Incremental bool
}

// Result is the outcome of converting one document.
type Result struct {
	Path       string
	Status     types.ConversionStatus
	InputHash  string
	OutputHash string
	Output     string
}

// ConvertDocument reads the document at path, converts it, and writes the
// result back when the content changed. Nothing is written unless both the
// read and the conversion of this same document succeeded.
func ConvertDocument(ctx context.Context, s Store, c Converter, path string, opts Options) (Result, error) {
	res := Result{Path: path, Status: types.ConversionFailed}

	input, err := s.Read(ctx, path)
	if err != nil {
		return res, err
	}
	output := c.Convert(input)

	res.InputHash = ledger.Hash(input)
	res.OutputHash = ledger.Hash(output)
	res.Output = output

	if output == input {
		res.Status = types.ConversionUnchanged
		return res, nil
	}
	if !opts.DryRun {
		if err := s.Write(ctx, path, output); err != nil {
			return res, err
		}
	}
	res.Status = types.ConversionDone
	return res, nil
}

// BatchResult holds the outcome of a workspace conversion run.
type BatchResult struct {
	Converted int
	Unchanged int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Unchanged + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(status types.ConversionStatus) {
	switch status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionUnchanged:
		r.Unchanged++
	case types.ConversionSkipped:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
}

// ConvertAll converts every document in s, one at a time, printing a status
// line per document to w and a single completion notice at the end. l may
// be nil. A cancelled ctx stops the run between documents and returns the
// partial result with ctx.Err().
func ConvertAll(ctx context.Context, s Store, c Converter, l Ledger, w io.Writer, opts Options) (BatchResult, error) {
	var result BatchResult

	docs, err := s.List(ctx)
	if err != nil {
		return result, err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if opts.Incremental && l != nil {
			last, ok, err := l.LastModTime(ctx, doc.Path)
			if err != nil {
				fmt.Fprintf(w, "warning: ledger lookup for %s: %v\n", doc.Path, err)
			} else if ok && last.Equal(doc.ModTime) {
				fmt.Fprintf(w, "skipped:   %s (unchanged since last conversion)\n", doc.Path)
				result.add(types.ConversionSkipped)
				continue
			}
		}

		res, err := ConvertDocument(ctx, s, c, doc.Path, opts)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", doc.Path, err)
		} else {
			fmt.Fprintf(w, "%-10s %s\n", string(res.Status)+":", doc.Path)
		}
		result.add(res.Status)

		if l != nil && !opts.DryRun {
			recordResult(ctx, s, l, w, doc, res)
		}
	}

	label := "Workspace converted"
	if opts.DryRun {
		label = "Workspace dry run"
	}
	fmt.Fprintf(w, "\n%s: %d converted, %d unchanged, %d skipped, %d failed (total: %d)\n",
		label, result.Converted, result.Unchanged, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// recordResult stores res in the ledger. The document is re-stat'ed after a
// write so that the recorded mod time is the one a later incremental run
// will observe.
func recordResult(ctx context.Context, s Store, l Ledger, w io.Writer, doc types.Document, res Result) {
	modTime := doc.ModTime
	if res.Status == types.ConversionDone {
		if fresh, err := s.Stat(ctx, doc.Path); err == nil {
			modTime = fresh.ModTime
		}
	}
	rec := types.ConversionRecord{
		Path:       doc.Path,
		Status:     res.Status,
		ModTime:    modTime,
		InputHash:  res.InputHash,
		OutputHash: res.OutputHash,
	}
	if err := l.Record(ctx, rec); err != nil {
		fmt.Fprintf(w, "warning: recording %s: %v\n", doc.Path, err)
	}
}
