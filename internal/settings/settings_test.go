// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mathconv/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    types.Settings
		wantErr bool
	}{
		{
			name: "missing file yields defaults",
			want: types.Settings{EnableDefaultPasteConversion: true},
		},
		{
			name:    "explicit false",
			content: strPtr("enable_default_paste_conversion: false\n"),
			want:    types.Settings{EnableDefaultPasteConversion: false},
		},
		{
			name:    "empty file keeps defaults",
			content: strPtr(""),
			want:    types.Settings{EnableDefaultPasteConversion: true},
		},
		{
			name:    "unrelated keys keep defaults",
			content: strPtr("theme: dark\n"),
			want:    types.Settings{EnableDefaultPasteConversion: true},
		},
		{
			name:    "malformed yaml",
			content: strPtr("enable_default_paste_conversion: [oops\n"),
			want:    types.Settings{EnableDefaultPasteConversion: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			got, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	require.NoError(t, Save(path, types.Settings{EnableDefaultPasteConversion: false}))
	got, err := Load(path)
	require.NoError(t, err)
	assert.False(t, got.EnableDefaultPasteConversion)

	require.NoError(t, Save(path, types.Settings{EnableDefaultPasteConversion: true}))
	got, err = Load(path)
	require.NoError(t, err)
	assert.True(t, got.EnableDefaultPasteConversion)
}

func TestGetSet(t *testing.T) {
	s := types.DefaultSettings()

	v, err := Get(s, KeyEnablePasteConversion)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, Set(&s, KeyEnablePasteConversion, "off"))
	assert.False(t, s.EnableDefaultPasteConversion)

	assert.Error(t, Set(&s, KeyEnablePasteConversion, "maybe"))
	assert.Error(t, Set(&s, "unknown", "true"))
	_, err = Get(s, "unknown")
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
