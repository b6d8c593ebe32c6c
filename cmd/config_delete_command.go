package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the loaded configuration file.",
	Long: `Remove the config file that was loaded for this run.

Afterwards defaults apply again (./timesheet.db, PDF export to the home
directory) unless TIMESHEET_* variables or flags say otherwise. The database is
not touched. Asks for a capital "Y" unless --yes is given.`,
	Example: `
  # Remove the loaded config
  timesheet config delete

  # Remove a specific config without asking
  timesheet --configFile ./night-shift.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file loaded")
		}

		if !configDeleteYes {
			confirmed, err := confirmTypedY(confirmInput, confirmOutput, fmt.Sprintf("Delete config %q?", path))
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("config delete aborted: confirmation was not 'Y'")
			}
		}

		if err := removeRegularFile("config", path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted config file: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
