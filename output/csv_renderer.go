package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"timesheet/report"
)

type CSVRenderer struct{}

func (r *CSVRenderer) Extension() string {
	return ".csv"
}

func (r *CSVRenderer) Render(path string, weekly report.WeeklyReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(reportHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range reportRows(weekly) {
		if err := writer.Write(row.cells); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	totals := totalsCells(weekly)
	if err := writer.Write([]string{totals[0], "", "", totals[1], totals[2], ""}); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}
