// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mathconv converts backslash math delimiters to dollar delimiters.
//
// Documents that carry explicit \( \) or \[ \] markers are rewritten by
// pattern substitution. Documents without them go through a line
// classifier that guesses, line by line, which lines are math and wraps
// them in $...$ or $$...$$.
package mathconv

import "strings"

// TraceEvent describes one classified line. It is delivered to a Tracer
// after the line has been emitted.
type TraceEvent struct {
	Line           int
	Text           string
	Classification Classification
	Prev           State
	Next           State
}

// Tracer receives a TraceEvent for every line the classifier processes.
type Tracer func(TraceEvent)

// Option configures a Converter.
type Option func(*Converter)

// WithTracer installs a trace hook on the classifier pass.
func WithTracer(t Tracer) Option {
	return func(c *Converter) { c.trace = t }
}

// Converter runs the conversion. It holds no per-call state and is safe for
// concurrent use.
type Converter struct {
	trace Tracer
}

// NewConverter returns a Converter configured with opts.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, o := range opts {
		o(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert converts text with the default Converter.
func Convert(text string) string {
	return defaultConverter.Convert(text)
}

// Convert rewrites explicit delimiters when text has any, and otherwise
// classifies text line by line.
func (c *Converter) Convert(text string) string {
	if HasExplicitDelimiters(text) {
		return Rewrite(text)
	}
	p := classifier{trace: c.trace}
	return p.run(text)
}

const closeDisplay = "\n$$"

// classifier is a single classification pass. Its state never outlives run.
type classifier struct {
	trace Tracer
	state State
	out   strings.Builder
}

func (p *classifier) run(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	p.out.Grow(len(text) + 16)

	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		sep := "\n"
		if i == 0 {
			sep = ""
		}

		prev := p.state
		class := Classify(line, prev)
		p.emit(line, sep, class)

		if p.trace != nil {
			p.trace(TraceEvent{
				Line:           i + 1,
				Text:           line,
				Classification: class,
				Prev:           prev,
				Next:           p.state,
			})
		}
	}

	if p.state == DisplayMathOpen {
		p.out.WriteString(closeDisplay)
	}
	return p.out.String()
}

// emit writes line with the delimiters its classification calls for. The
// separator before the line is written here too, since the display
// continuation splice drops it.
func (p *classifier) emit(line, sep string, class Classification) {
	switch class {
	case ShortInlineMath, LongInlineMath:
		if p.state == DisplayMathOpen {
			p.out.WriteString(closeDisplay)
		}
		p.out.WriteString(sep)
		p.out.WriteString("$" + strings.TrimSpace(line) + "$")
		p.state = ShortMath

	case DisplayMath:
		p.out.WriteString(sep)
		if p.state != DisplayMathOpen {
			p.out.WriteString("$$")
		}
		p.out.WriteString(strings.TrimSpace(line))
		p.state = DisplayMathOpen

	default:
		if p.state == DisplayMathOpen {
			p.out.WriteString(closeDisplay)
			if !strings.HasPrefix(line, ",") && !strings.HasPrefix(line, ".") {
				p.out.WriteString(sep)
			}
		} else {
			p.out.WriteString(sep)
		}
		p.out.WriteString(line)
		p.state = NoMath
	}
}
