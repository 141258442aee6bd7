// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathconv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classification is the tag the heuristic assigns to a single line.
type Classification int

const (
	Prose Classification = iota
	ShortInlineMath
	LongInlineMath
	DisplayMath
)

func (c Classification) String() string {
	switch c {
	case ShortInlineMath:
		return "short-inline"
	case LongInlineMath:
		return "long-inline"
	case DisplayMath:
		return "display"
	default:
		return "prose"
	}
}

// State is the classifier's memory of the previous line.
type State int

const (
	NoMath State = iota
	ShortMath
	DisplayMathOpen
)

func (s State) String() string {
	switch s {
	case ShortMath:
		return "short-math"
	case DisplayMathOpen:
		return "display-math"
	default:
		return "no-math"
	}
}

const (
	// shortLineLimit is the rune count below which a line with any term is
	// taken as short inline math.
	shortLineLimit = 12

	// displayLineLimit is the rune count a math-dense equation must exceed
	// to be set as display math.
	displayLineLimit = 20

	// densityCutoff is the after/before whitespace density ratio under which
	// a line counts as math-dense.
	densityCutoff = 0.5
)

// terms are substrings taken as a weak signal of math syntax.
var terms = []string{`\`, "_", "^", "=", "+", "/", "∂", "√"}

// operatorSpacing strips spaced arithmetic operators for the density ratio.
var operatorSpacing = strings.NewReplacer(" + ", "", " - ", "", " = ", "")

// ContainsTerm reports whether line contains any member of the term set.
func ContainsTerm(line string) bool {
	for _, t := range terms {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}

// Classify assigns a Classification to line given the state left by the
// previous line. line must not include its terminator.
func Classify(line string, prev State) Classification {
	if strings.Contains(line, "$") {
		return Prose
	}

	n := utf8.RuneCountInString(line)
	trimmed := strings.TrimSpace(line)

	switch {
	case n == 1 && prev == NoMath && trimmed != "":
		return ShortInlineMath
	case !ContainsTerm(line):
		return Prose
	case n < shortLineLimit:
		return ShortInlineMath
	}

	if !mathDense(trimmed) {
		return Prose
	}
	if n > displayLineLimit && strings.Contains(line, "=") {
		return DisplayMath
	}
	return LongInlineMath
}

// DensityRatio compares whitespace density of s after removing spaced
// arithmetic operators to the density before. A line with no whitespace
// returns 0.
func DensityRatio(s string) float64 {
	before := whitespaceDensity(s)
	if before == 0 {
		return 0
	}
	return whitespaceDensity(operatorSpacing.Replace(s)) / before
}

func mathDense(s string) bool {
	return DensityRatio(s) < densityCutoff
}

func whitespaceDensity(s string) float64 {
	total, spaces := 0, 0
	for _, r := range s {
		total++
		if unicode.IsSpace(r) {
			spaces++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(spaces) / float64(total)
}
