package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mathconv/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change persisted settings",
	Long: `Config reads and writes the settings file (default:
~/.config/mathconv/settings.yaml). Settings persist across runs.

Available settings:
  enable-default-paste-conversion   convert text in "paste --intercept" (default true)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(settingsPath())
		if err != nil {
			return err
		}
		v, err := settings.Get(s, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPath()
		s, err := settings.Load(path)
		if err != nil {
			return err
		}
		if err := settings.Set(&s, args[0], args[1]); err != nil {
			return err
		}
		if err := settings.Save(path, s); err != nil {
			return err
		}
		logger.Debug("saved settings", "path", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settingsPath())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}
