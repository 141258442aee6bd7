// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathconv

import (
	"regexp"
	"strings"
)

const (
	inlineOpen  = `\(`
	displayOpen = `\[`
)

var (
	// inlinePattern matches \( ... \) on a single line, shortest match first.
	inlinePattern = regexp.MustCompile(`\\\((.*?)\\\)`)

	// displayPattern matches \[ ... \] across line breaks, shortest match first.
	displayPattern = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
)

// HasExplicitDelimiters reports whether text contains an inline or display
// open marker anywhere. It is a substring test, not a parse: a stray open
// marker with no matching close still counts.
func HasExplicitDelimiters(text string) bool {
	return strings.Contains(text, inlineOpen) || strings.Contains(text, displayOpen)
}

// Rewrite replaces every explicit \( ... \) span with $...$ and every
// \[ ... \] span with a $$ block set off by blank lines. Captured content is
// trimmed; surrounding prose is not. Markers without a partner are left as is.
func Rewrite(text string) string {
	text = inlinePattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := inlinePattern.FindStringSubmatch(m)[1]
		return "$" + strings.TrimSpace(inner) + "$"
	})
	return displayPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := displayPattern.FindStringSubmatch(m)[1]
		return "\n$$\n" + strings.TrimSpace(inner) + "\n$$\n"
	})
}
