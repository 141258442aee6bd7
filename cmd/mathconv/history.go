package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mathconv/internal/ledger"
	"github.com/pdiddy/mathconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [document]",
	Short: "Show or export the conversion ledger of a workspace",
	Long: `History lists past conversions recorded by vault runs, newest first.
Filter by document path or --status. With --export yaml|json the full
(filtered) history is written to export.yaml or export.json next to the
ledger database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	var wsArgs []string
	if dir != "" {
		wsArgs = []string{dir}
	}
	cfg := workspaceConfig(cmd, wsArgs)

	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer l.Close()

	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := ledger.HistoryOptions{
		Status: types.ConversionStatus(status),
		Limit:  limit,
	}
	if len(args) > 0 {
		opts.Path = args[0]
	}

	out := cmd.OutOrStdout()
	export, _ := cmd.Flags().GetString("export")
	switch export {
	case "":
	case "yaml":
		path, err := l.ExportYAML(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Exported to", path)
		return nil
	case "json":
		path, err := l.ExportJSON(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Exported to", path)
		return nil
	default:
		return fmt.Errorf("unsupported export format %q: use yaml or json", export)
	}

	records, err := l.History(cmd.Context(), opts)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(out, records, jsonOutput)
}

func formatHistory(w io.Writer, records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-10s  %-12s  %s\n", "Converted at", "Status", "Output", "Document")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range records {
		hash := r.OutputHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%-20s  %-10s  %-12s  %s\n",
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"), r.Status, hash, r.Path)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}

func init() {
	historyCmd.Flags().String("dir", "", "workspace directory (default: workspace.dir or .)")
	historyCmd.Flags().String("status", "", "filter by status: converted, unchanged, failed")
	historyCmd.Flags().Int("limit", 0, "maximum records (0 = default 50, -1 = all)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")
	historyCmd.Flags().String("export", "", "export history to a file: yaml or json")

	rootCmd.AddCommand(historyCmd)
}
