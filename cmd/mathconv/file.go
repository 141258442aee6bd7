package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mathconv/internal/workspace"
	"github.com/pdiddy/mathconv/pkg/types"
)

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Convert the math delimiters of one document in place",
	Long: `File reads one document, converts its math delimiters, and replaces the
document's content with the result. The document is written only after it
was read and converted successfully, and the write is atomic.

Use --stdout to print the converted text instead of writing the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func runFile(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	dir, name := filepath.Split(filepath.Clean(args[0]))
	store, err := workspace.NewDirStore(types.WorkspaceConfig{Dir: dir})
	if err != nil {
		return err
	}
	if _, err := store.Stat(cmd.Context(), name); err != nil {
		return err
	}

	res, err := workspace.ConvertDocument(cmd.Context(), store, newConverter(), name, workspace.Options{
		DryRun: dryRun || toStdout,
	})
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}

	if toStdout {
		_, err := io.WriteString(cmd.OutOrStdout(), res.Output)
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Status, args[0])
	return nil
}

func init() {
	fileCmd.Flags().Bool("stdout", false, "print the converted document instead of writing it")
	fileCmd.Flags().Bool("dry-run", false, "convert but do not write")

	rootCmd.AddCommand(fileCmd)
}
