package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/mathconv/internal/paste"
	"github.com/pdiddy/mathconv/internal/settings"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Convert clipboard text piped on stdin and print it",
	Long: `Paste reads clipboard text from stdin, converts its math delimiters,
and writes the result to stdout, ready to insert at the cursor:

  pbpaste | mathconv paste | pbcopy

With --intercept, paste behaves like automatic paste conversion: the text is
converted only when the enable-default-paste-conversion setting is on, and
passed through unchanged otherwise. Empty clipboard text produces no output.`,
	RunE: runPaste,
}

func runPaste(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("no clipboard text on stdin: pipe it in, e.g. pbpaste | mathconv paste")
	}

	intercept, _ := cmd.Flags().GetBool("intercept")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cb := paste.NewReaderClipboard(in)
	conv := newConverter()
	out := cmd.OutOrStdout()

	if intercept {
		return runIntercept(ctx, cb, conv, out)
	}

	err := paste.Paste(ctx, cb, conv, out)
	if errors.Is(err, paste.ErrEmptyClipboard) {
		logger.Info("nothing to paste", "reason", err)
		return nil
	}
	return err
}

func runIntercept(ctx context.Context, cb paste.Clipboard, conv paste.Converter, out io.Writer) error {
	s, err := settings.Load(settingsPath())
	if err != nil {
		return err
	}
	text, err := cb.ReadText(ctx)
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}

	insert, handled := paste.Intercept(conv, text, s.EnableDefaultPasteConversion)
	if !handled {
		return nil
	}
	logger.Debug("paste intercepted", "converted", s.EnableDefaultPasteConversion, "bytes", len(text))
	_, err = io.WriteString(out, insert)
	return err
}

func init() {
	pasteCmd.Flags().Bool("intercept", false, "honor the enable-default-paste-conversion setting instead of always converting")
	pasteCmd.Flags().Duration("timeout", 10*time.Second, "give up reading the clipboard after this long (0 = no limit)")

	rootCmd.AddCommand(pasteCmd)
}
