package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write the example timesheet configuration.",
	Long: `Write the example configuration (database path, export directory and format,
log level, web port) to the active config path.

The path is --configFile when given, otherwise the file already loaded, otherwise
$HOME/.timesheet.yaml. An existing file is left as it is.`,
	Example: `
  # Write $HOME/.timesheet.yaml
  timesheet config create

  # Keep a separate config for a second database
  timesheet --configFile ./night-shift.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefaultConfig(cmd.OutOrStdout(), cfgFile, viper.ConfigFileUsed())
	},
}

func writeDefaultConfig(out io.Writer, flagPath, loadedPath string) error {
	path, err := activeConfigPath(flagPath, loadedPath)
	if err != nil {
		return err
	}

	written, err := writeExampleConfig(path)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintf(out, "Config file already exists, left unchanged: %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "Wrote example config: %s\n", path)
	fmt.Fprintln(out, "Run \"timesheet config edit\" to change the database path or export directory.")
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
