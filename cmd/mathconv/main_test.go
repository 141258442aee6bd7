// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores scalar flags to their defaults so that commands can
// be executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() == "stringSlice" {
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mathconv dev\n", out)
}

func TestPaste(t *testing.T) {
	out, err := runCLI(t, `see \(x^2\)`, "paste")
	require.NoError(t, err)
	assert.Equal(t, "see $x^2$", out)
}

func TestPaste_EmptyClipboard(t *testing.T) {
	out, err := runCLI(t, "", "paste")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfigAndInterceptedPaste(t *testing.T) {
	settingsFile := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := runCLI(t, "", "config", "get", "enable-default-paste-conversion", "--settings-file", settingsFile)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCLI(t, `\(x\)`, "paste", "--intercept", "--settings-file", settingsFile)
	require.NoError(t, err)
	assert.Equal(t, "$x$", out)

	_, err = runCLI(t, "", "config", "set", "enable-default-paste-conversion", "false", "--settings-file", settingsFile)
	require.NoError(t, err)

	out, err = runCLI(t, `\(x\)`, "paste", "--intercept", "--settings-file", settingsFile)
	require.NoError(t, err)
	assert.Equal(t, `\(x\)`, out, "disabled setting passes text through")

	_, err = runCLI(t, "", "config", "set", "no-such-setting", "true", "--settings-file", settingsFile)
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte(`Let \(a\) hold`), 0o644))

	out, err := runCLI(t, "", "file", "--stdout", path)
	require.NoError(t, err)
	assert.Equal(t, "Let $a$ hold", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `Let \(a\) hold`, string(data), "--stdout leaves the file alone")

	_, err = runCLI(t, "", "file", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Let $a$ hold", string(data))

	_, err = runCLI(t, "", "file", filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestVaultAndHistory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(`\(a\)`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.md"), []byte("Intro\nx\nend"), 0o644))

	out, err := runCLI(t, "", "vault", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "converted: a.md")
	assert.Contains(t, out, "converted: sub/b.md")
	assert.Contains(t, out, "Workspace converted: 2 converted")

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "Intro\n$x$\nend", string(data))

	out, err = runCLI(t, "", "history", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 records")

	out, err = runCLI(t, "", "vault", "--incremental", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 skipped")

	out, err = runCLI(t, "", "history", "--dir", dir, "--export", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "export.yaml")
	_, err = os.Stat(filepath.Join(dir, ledgerSubdir, "export.yaml"))
	assert.NoError(t, err)
}
