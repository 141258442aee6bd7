// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mathconv CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mathconv/internal/logging"
	"github.com/pdiddy/mathconv/internal/mathconv"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics to stderr. Replaced in PersistentPreRunE.
var logger = logging.NewNop()

// rootCmd is the base command for the mathconv CLI.
var rootCmd = &cobra.Command{
	Use:   "mathconv",
	Short: "Convert \\( \\) and \\[ \\] math delimiters to $ and $$",
	Long: `mathconv rewrites math delimiters in Markdown documents from the
backslash style (\( ... \) and \[ ... \]) to the dollar style ($ ... $ and
$$ ... $$). Text without explicit delimiters goes through a line classifier
that guesses which lines are math.

Subcommands cover pasting from the clipboard (paste), converting one
document (file), converting a whole workspace of documents (vault),
inspecting past conversions (history), and the persisted settings (config).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = logging.New(os.Stderr, level)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mathconv.yaml or ~/.config/mathconv/mathconv.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: debug, info, warn, error (debug traces every classified line)")
	rootCmd.PersistentFlags().String("settings-file", "", "settings file (default: ~/.config/mathconv/settings.yaml)")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("settings_file", rootCmd.PersistentFlags().Lookup("settings-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mathconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("MATHCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configDir returns ~/.config/mathconv.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mathconv"), nil
}

// settingsPath resolves the settings file from flag, config, or default.
func settingsPath() string {
	if p := viper.GetString("settings_file"); p != "" {
		return p
	}
	dir, err := configDir()
	if err != nil {
		return "settings.yaml"
	}
	return filepath.Join(dir, "settings.yaml")
}

// newConverter returns a Converter that traces each classified line when
// debug logging is enabled.
func newConverter() *mathconv.Converter {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return mathconv.NewConverter(mathconv.WithTracer(logging.Tracer(logger)))
	}
	return mathconv.NewConverter()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
