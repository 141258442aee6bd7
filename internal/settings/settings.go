// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings persists user settings as a YAML file. Keys missing from
// the file keep their default values, so older files stay readable as new
// settings are added.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mathconv/pkg/types"
)

// KeyEnablePasteConversion is the CLI name of the paste conversion toggle.
const KeyEnablePasteConversion = "enable-default-paste-conversion"

// Load reads settings from path. A missing file is not an error; Load
// returns the defaults.
func Load(path string) (types.Settings, error) {
	s := types.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return types.DefaultSettings(), fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the parent directory if needed.
func Save(path string, s types.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// Get returns the string form of the named setting.
func Get(s types.Settings, key string) (string, error) {
	switch key {
	case KeyEnablePasteConversion:
		return fmt.Sprintf("%t", s.EnableDefaultPasteConversion), nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// Set parses value and assigns it to the named setting.
func Set(s *types.Settings, key, value string) error {
	switch key {
	case KeyEnablePasteConversion:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		s.EnableDefaultPasteConversion = b
		return nil
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
