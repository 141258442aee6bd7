// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one document.
type ConversionStatus string

const (
	// ConversionDone means the document content changed and was written.
	ConversionDone ConversionStatus = "converted"
	// ConversionUnchanged means conversion produced identical content; nothing was written.
	ConversionUnchanged ConversionStatus = "unchanged"
	// ConversionSkipped means the document was not read (incremental run, untouched since last conversion).
	ConversionSkipped ConversionStatus = "skipped"
	// ConversionFailed means reading, converting, or writing failed.
	ConversionFailed ConversionStatus = "failed"
)

// Document identifies one text document in a workspace.
type Document struct {
	// Path is the document path relative to the workspace root, slash-separated.
	Path string `json:"path" yaml:"path"`

	// ModTime is the last modification time observed when the document was listed.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`

	// Size is the document size in bytes when listed.
	Size int64 `json:"size" yaml:"size"`
}

// ConversionRecord is one ledger entry describing a conversion of a document.
type ConversionRecord struct {
	Path        string           `json:"path" yaml:"path"`
	Status      ConversionStatus `json:"status" yaml:"status"`
	ModTime     time.Time        `json:"mod_time" yaml:"mod_time"`
	InputHash   string           `json:"input_hash" yaml:"input_hash"`
	OutputHash  string           `json:"output_hash" yaml:"output_hash"`
	ConvertedAt time.Time        `json:"converted_at" yaml:"converted_at"`
}
