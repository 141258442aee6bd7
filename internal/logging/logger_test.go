// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mathconv/internal/mathconv"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNew_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("boom", "error", errors.New("bad"))
	assert.Contains(t, buf.String(), "err=bad")
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	conv := mathconv.NewConverter(mathconv.WithTracer(Tracer(New(&buf, slog.LevelDebug))))

	conv.Convert("Intro\nx")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "classified line"))
	assert.Contains(t, out, "class=short-inline")
	assert.Contains(t, out, "prev=no-math")
}

func TestTracer_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	conv := mathconv.NewConverter(mathconv.WithTracer(Tracer(New(&buf, slog.LevelInfo))))
	conv.Convert("Intro\nx")
	assert.Empty(t, buf.String())
}
