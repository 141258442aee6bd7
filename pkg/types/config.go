// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Settings holds the user-facing options persisted across sessions.
type Settings struct {
	// EnableDefaultPasteConversion converts pasted text automatically when
	// paste interception is active (default true).
	EnableDefaultPasteConversion bool `json:"enable_default_paste_conversion" yaml:"enable_default_paste_conversion"`
}

// DefaultSettings returns the settings used when nothing has been saved.
func DefaultSettings() Settings {
	return Settings{EnableDefaultPasteConversion: true}
}

// WorkspaceConfig holds settings for the document workspace.
type WorkspaceConfig struct {
	// Dir is the root directory that holds the Markdown documents.
	Dir string `json:"dir" yaml:"dir"`

	// Extensions lists the file extensions treated as documents (default [".md"]).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// IncludeHidden walks into dot-directories such as .obsidian/ when true.
	IncludeHidden bool `json:"include_hidden" yaml:"include_hidden"`
}

// LedgerConfig holds settings for the conversion ledger.
type LedgerConfig struct {
	// Dir is the directory that holds the ledger database (contains ledger.db).
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups the configuration for all mathconv commands.
type Config struct {
	Workspace    WorkspaceConfig `json:"workspace" yaml:"workspace"`
	Ledger       LedgerConfig    `json:"ledger" yaml:"ledger"`
	SettingsFile string          `json:"settings_file" yaml:"settings_file"`
	LogLevel     string          `json:"log_level" yaml:"log_level"`
}
