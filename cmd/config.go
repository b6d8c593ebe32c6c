package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage timesheet configuration file values.",
	Long: `Create, edit, display, and delete the timesheet configuration file.

The configuration stores:
- storage.db_path
- export.dir / export.format
- log.level
- serve.port

Every key can also be set through the environment, e.g. TIMESHEET_EXPORT_FORMAT=excel.`,
	Example: `
  # Create default config in $HOME/.timesheet.yaml
  timesheet config create

  # Show active config and source file
  timesheet config show

  # Open active config in editor (creates example if missing)
  timesheet config edit

  # Delete active config file
  timesheet config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
