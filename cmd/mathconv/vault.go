package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mathconv/internal/ledger"
	"github.com/pdiddy/mathconv/internal/workspace"
	"github.com/pdiddy/mathconv/pkg/types"
)

// ledgerSubdir is where the ledger lives inside a workspace by default.
// Dot-directories are skipped when listing documents.
const ledgerSubdir = ".mathconv"

var vaultCmd = &cobra.Command{
	Use:   "vault [dir]",
	Short: "Convert every document in a workspace directory",
	Long: `Vault walks a workspace directory (default: the configured workspace.dir
or the current directory), and for each Markdown document reads it,
converts its math delimiters, and writes it back. Documents are processed
one at a time; a single summary is printed when all are done.

Every conversion is recorded in a SQLite ledger under <dir>/.mathconv/.
With --incremental, documents not modified since their last conversion are
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVault,
}

func runVault(cmd *cobra.Command, args []string) error {
	cfg := workspaceConfig(cmd, args)
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	incremental, _ := cmd.Flags().GetBool("incremental")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	store, err := workspace.NewDirStore(cfg.Workspace)
	if err != nil {
		return err
	}

	var l workspace.Ledger
	if !noLedger {
		lg, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer lg.Close()
		l = lg
	}

	logger.Debug("converting workspace", "dir", store.Root(), "incremental", incremental, "dry_run", dryRun)

	result, err := workspace.ConvertAll(cmd.Context(), store, newConverter(), l, cmd.OutOrStdout(), workspace.Options{
		DryRun:      dryRun,
		Incremental: incremental,
	})
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

// workspaceConfig resolves the workspace and ledger directories from the
// positional argument, flags, and viper config, in that order.
func workspaceConfig(cmd *cobra.Command, args []string) types.Config {
	dir := viper.GetString("workspace.dir")
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		dir = "."
	}

	ledgerDir := viper.GetString("ledger.dir")
	if ledgerDir == "" {
		ledgerDir = filepath.Join(dir, ledgerSubdir)
	}

	cfg := types.Config{
		Workspace: types.WorkspaceConfig{
			Dir:           dir,
			Extensions:    viper.GetStringSlice("workspace.extensions"),
			IncludeHidden: viper.GetBool("workspace.include_hidden"),
		},
		Ledger:       types.LedgerConfig{Dir: ledgerDir},
		SettingsFile: settingsPath(),
		LogLevel:     viper.GetString("log_level"),
	}
	if f := cmd.Flags().Lookup("ext"); f != nil && f.Changed {
		cfg.Workspace.Extensions, _ = cmd.Flags().GetStringSlice("ext")
	}
	if f := cmd.Flags().Lookup("include-hidden"); f != nil && f.Changed {
		cfg.Workspace.IncludeHidden, _ = cmd.Flags().GetBool("include-hidden")
	}
	return cfg
}

func init() {
	vaultCmd.Flags().Bool("dry-run", false, "convert and report, but do not write documents")
	vaultCmd.Flags().Bool("incremental", false, "skip documents unchanged since their last recorded conversion")
	vaultCmd.Flags().Bool("no-ledger", false, "do not open or update the conversion ledger")
	vaultCmd.Flags().StringSlice("ext", []string{".md"}, "document file extensions")
	vaultCmd.Flags().Bool("include-hidden", false, "also convert documents inside dot-directories")

	rootCmd.AddCommand(vaultCmd)
}
