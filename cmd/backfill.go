package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Label stored intervals that have no shift yet",
	Long: `Classify every completed interval whose shift label is missing.

Databases written before shift labels existed get the column added and filled
when they are opened; this command runs the same pass explicitly and reports
how many rows were labeled. Rows with unreadable timestamps are skipped and
existing labels are never changed.`,
	Example: `
  # Label intervals in the configured database
  timesheet backfill

  # Label intervals in another database
  timesheet backfill --db ./old-timesheet.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		labeled, err := store.BackfillShifts()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Backfill completed. Labeled rows: %d, File: %s\n", store.Backfilled()+labeled, cfg.Storage.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}
