// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the matching history to <ledger dir>/export.yaml and
// returns the path written.
func (l *Ledger) ExportYAML(ctx context.Context, opts HistoryOptions) (string, error) {
	opts.Limit = -1
	records, err := l.History(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(l.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the matching history to <ledger dir>/export.json and
// returns the path written.
func (l *Ledger) ExportJSON(ctx context.Context, opts HistoryOptions) (string, error) {
	opts.Limit = -1
	records, err := l.History(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(l.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}
