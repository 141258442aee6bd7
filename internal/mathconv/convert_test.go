// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathconv

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const displayLine = "x = a + b + c + d + e + f + g"

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "explicit markers route to rewriter",
			input: `Let \(x\) and \(y\)`,
			want:  "Let $x$ and $y$",
		},
		{
			name:  "stray explicit marker still routes to rewriter",
			input: "x^2\n\\( unmatched",
			want:  "x^2\n\\( unmatched",
		},
		{
			name:  "single character line after prose",
			input: "Intro\nx\nend",
			want:  "Intro\n$x$\nend",
		},
		{
			name:  "single character line after short math is prose",
			input: "x\ny",
			want:  "$x$\ny",
		},
		{
			name:  "single whitespace line is prose",
			input: " \n   ",
			want:  " \n   ",
		},
		{
			name:  "short line with term",
			input: "Let\nx^2 + y\ndone",
			want:  "Let\n$x^2 + y$\ndone",
		},
		{
			name:  "short line is trimmed",
			input: "  a_i  ",
			want:  "$a_i$",
		},
		{
			name:  "plain prose untouched",
			input: "hello there\nsecond line here",
			want:  "hello there\nsecond line here",
		},
		{
			name:  "prose with a stray symbol stays prose",
			input: "Visit the site at example.com/path for more details",
			want:  "Visit the site at example.com/path for more details",
		},
		{
			name:  "dense line without equals is long inline",
			input: `\alpha+\beta^2_{ij}`,
			want:  `$\alpha+\beta^2_{ij}$`,
		},
		{
			name:  "display block closed at end of input",
			input: displayLine,
			want:  "$$" + displayLine + "\n$$",
		},
		{
			name:  "display block closed before prose",
			input: "We have\n" + displayLine + "\nnext line",
			want:  "We have\n$$" + displayLine + "\n$$\nnext line",
		},
		{
			name:  "display block closed before trailing empty line",
			input: displayLine + "\n",
			want:  "$$" + displayLine + "\n$$\n",
		},
		{
			name:  "period continuation splices closing marker",
			input: "We have\n" + displayLine + "\n. end.",
			want:  "We have\n$$" + displayLine + "\n$$. end.",
		},
		{
			name:  "comma continuation splices closing marker",
			input: displayLine + "\n, where g is real",
			want:  "$$" + displayLine + "\n$$, where g is real",
		},
		{
			name:  "adjacent display lines merge into one block",
			input: "a = b + c + d + e + f + g + h\ny = p + q + r + s + t + u + v",
			want:  "$$a = b + c + d + e + f + g + h\ny = p + q + r + s + t + u + v\n$$",
		},
		{
			name:  "short math after display closes the block",
			input: displayLine + "\ny^2",
			want:  "$$" + displayLine + "\n$$\n$y^2$",
		},
		{
			name:  "crlf is normalized",
			input: "Intro\r\nx\r\nend",
			want:  "Intro\n$x$\nend",
		},
		{
			name:  "line with dollar is already delimited",
			input: "costs $5 + tax",
			want:  "costs $5 + tax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.input))
		})
	}
}

func TestConvert_TermTriggeredShortLine(t *testing.T) {
	withTerm := "x^2 is nice"
	withoutTerm := "hello there"
	require.Equal(t, len(withTerm), len(withoutTerm))

	assert.Equal(t, "$x^2 is nice$", Convert(withTerm))
	assert.Equal(t, withoutTerm, Convert(withoutTerm))
}

func TestConvert_ContinuationSplicePosition(t *testing.T) {
	got := Convert(displayLine + "\n. end.")
	idx := strings.Index(got, ". end.")
	require.GreaterOrEqual(t, idx, 2)
	assert.Equal(t, "$$", got[idx-2:idx], "closing marker must sit directly before the punctuation")
}

func TestConvert_NoStateAcrossCalls(t *testing.T) {
	// A call that ends inside a display block must not leak into the next.
	_ = Convert("prefix\n" + displayLine)
	assert.Equal(t, "Intro\n$x$\nend", Convert("Intro\nx\nend"))
}

func TestConvert_Concurrent(t *testing.T) {
	inputs := []string{
		"Intro\nx\nend",
		"We have\n" + displayLine + "\n. end.",
		`\(a\)\(b\)`,
		"hello there\nx^2 is nice",
	}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = Convert(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				if got := Convert(in); got != want[i] {
					errs <- got
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent result diverged: %q", got)
	}
}

func TestConverter_Tracer(t *testing.T) {
	var events []TraceEvent
	c := NewConverter(WithTracer(func(e TraceEvent) {
		events = append(events, e)
	}))

	c.Convert("We have\n" + displayLine + "\n. end.")

	require.Len(t, events, 3)
	assert.Equal(t, Prose, events[0].Classification)
	assert.Equal(t, DisplayMath, events[1].Classification)
	assert.Equal(t, DisplayMathOpen, events[1].Next)
	assert.Equal(t, Prose, events[2].Classification)
	assert.Equal(t, DisplayMathOpen, events[2].Prev)
	assert.Equal(t, NoMath, events[2].Next)
	assert.Equal(t, 3, events[2].Line)
}

func TestConverter_TracerNotCalledForRewrite(t *testing.T) {
	called := false
	c := NewConverter(WithTracer(func(TraceEvent) { called = true }))
	assert.Equal(t, "$a$", c.Convert(`\(a\)`))
	assert.False(t, called)
}
