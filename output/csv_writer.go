package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"timesheet/interval"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, items []interval.Interval) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(rawHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, item := range items {
		if err := writer.Write(rawRow(item)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
