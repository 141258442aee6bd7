// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paste converts clipboard text on its way into a document, either
// automatically on every paste (interception) or on request.
package paste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyClipboard is returned when the clipboard holds no text.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// Converter transforms pasted text.
type Converter interface {
	Convert(text string) string
}

// Clipboard supplies the text being pasted.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
}

// Intercept decides what a paste event inserts. When text is empty the
// paste is not intercepted and handled is false. Otherwise the inserted
// text is the converted text when enabled, or text unchanged when not.
func Intercept(c Converter, text string, enabled bool) (insert string, handled bool) {
	if text == "" {
		return "", false
	}
	if !enabled {
		return text, true
	}
	return c.Convert(text), true
}

// Paste reads the clipboard, converts its text, and writes the result to
// dst, the insertion point.
func Paste(ctx context.Context, cb Clipboard, c Converter, dst io.Writer) error {
	text, err := cb.ReadText(ctx)
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}
	if text == "" {
		return ErrEmptyClipboard
	}
	if _, err := io.WriteString(dst, c.Convert(text)); err != nil {
		return fmt.Errorf("inserting converted text: %w", err)
	}
	return nil
}

// ReaderClipboard is a Clipboard whose text is the full content of an
// io.Reader, such as stdin for `xclip -o | mathconv paste`.
type ReaderClipboard struct {
	r io.Reader
}

// NewReaderClipboard returns a Clipboard reading from r.
func NewReaderClipboard(r io.Reader) *ReaderClipboard {
	return &ReaderClipboard{r: r}
}

// ReadText reads r to EOF in the background and returns its content, or
// ctx.Err() if ctx ends first.
func (rc *ReaderClipboard) ReadText(ctx context.Context) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var b strings.Builder
		_, err := io.Copy(&b, rc.r)
		done <- result{text: b.String(), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.text, res.err
	}
}
