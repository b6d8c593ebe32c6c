package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timesheet/config"
	"timesheet/internal/apperr"
	"timesheet/interval"
	"timesheet/output"
	"timesheet/report"
	"timesheet/storage"
)

var (
	exportMode   string
	exportDate   string
	exportFormat string
	exportDir    string
	exportFrom   string
	exportTo     string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the weekly timesheet or raw intervals",
	Long: `Export recorded intervals from SQLite.

Modes:
- week: render the Monday to Sunday timesheet for the week containing --date
  as PDF, Excel or CSV into the export directory. The file is named
  Timesheet_WeekNN_YYYY; an existing file is never overwritten, a -1, -2, ...
  suffix is added instead.
- raw: export each completed interval row to CSV or Excel.

Without --date an interactive terminal asks for the week; otherwise an empty
selection is rejected.`,
	Example: `
  # Export the week containing a day as PDF to the configured directory
  timesheet export --date 2024-03-06

  # Export the same week as Excel into ./reports
  timesheet export --date 2024-03-06 --format excel --dir ./reports

  # Pick the week interactively
  timesheet export

  # Export raw interval rows in a date range
  timesheet export --mode raw --from 2024-03-01 --to 2024-03-31 --output ./march.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		switch strings.TrimSpace(strings.ToLower(exportMode)) {
		case "", "week":
			return runWeekExport(cmd, cfg)
		case "raw":
			return runRawExport(cmd, cfg)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: week, raw)", exportMode)
		}
	},
}

func runWeekExport(cmd *cobra.Command, cfg *config.Config) error {
	selected, err := resolveWeekSelection(exportDate, stdinIsTerminal(), promptWeekDate)
	if err != nil {
		return err
	}

	format := exportFormat
	if strings.TrimSpace(format) == "" {
		format = cfg.Export.Format
	}
	dir := exportDir
	if strings.TrimSpace(dir) == "" {
		if dir, err = cfg.ResolveExportDir(); err != nil {
			return err
		}
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

	path, err := output.Export(dir, format, weekly)
	if err != nil {
		return err
	}

	slog.Info("weekly report exported", "week", weekly.Label(), "file", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Week: %s, Hours: %.2f, Overtime: %.2f, File: %s\n",
		weekly.Label(), weekly.Totals.Hours, weekly.Totals.OvertimeHours, path)
	return nil
}

func runRawExport(cmd *cobra.Command, cfg *config.Config) error {
	if strings.TrimSpace(exportOutput) == "" {
		return fmt.Errorf("raw export requires --output")
	}

	format := exportFormat
	if strings.TrimSpace(format) == "" {
		format = output.DetectFormat(exportOutput)
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return fmt.Errorf("%w (raw export supports csv and excel)", err)
	}

	from, to, bounded, err := parseDateRange(exportFrom, exportTo)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := loadRawIntervals(store, from, to, bounded)
	if err != nil {
		return err
	}

	if err := writer.Write(exportOutput, items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Rows: %d, Mode: raw, Format: %s, File: %s\n", len(items), format, exportOutput)
	return nil
}

func loadRawIntervals(store *storage.SQLiteStore, from, to time.Time, bounded bool) ([]interval.Interval, error) {
	var (
		items []interval.Interval
		err   error
	)
	if bounded {
		items, err = store.QueryRange(from, to)
	} else {
		items, err = store.ListIntervals()
	}
	if err != nil {
		return nil, apperr.Storage("list intervals", err)
	}
	return items, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "week", "Export mode: week|raw")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Any day of the week to export, YYYY-MM-DD")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: pdf|excel|csv for week, csv|excel for raw (default: export.format or output extension)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory for the weekly report (default: export.dir or home directory)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Raw mode: first start date to include, YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Raw mode: last start date to include, YYYY-MM-DD")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Raw mode: output file path")
}
