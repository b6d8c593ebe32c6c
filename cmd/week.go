package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timesheet/internal/timeutil"
	"timesheet/output"
	"timesheet/report"
)

var weekDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the weekly timesheet in the terminal",
	Long: `Print the Monday to Sunday timesheet for the week containing --date.

Every day of the week is listed; days without a completed interval stay empty.
Overtime is the part of a day's hours above 8.`,
	Example: `
  # Current week
  timesheet week

  # Week containing a given day
  timesheet week --date 2024-03-06
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		raw := weekDate
		if strings.TrimSpace(raw) == "" {
			raw = timeutil.DateKey(time.Now())
		}
		selected, err := report.ParseSelection(raw)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		weekly, err := report.BuildWeekly(selected, store)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), output.RenderTerminal(weekly))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)

	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any day of the week to show, YYYY-MM-DD (default: today)")
}
