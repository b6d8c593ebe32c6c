package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"timesheet/interval"
)

// Writer exports raw intervals, one row per interval.
type Writer interface {
	Write(path string, items []interval.Interval) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat infers the output format from a file extension, defaulting
// to csv.
func DetectFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "pdf":
		return "pdf"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var rawHeaders = []string{"ID", "ClockIn", "ClockOut", "Hours", "Shift"}

func rawRow(item interval.Interval) []string {
	return []string{
		fmt.Sprintf("%d", item.ID),
		item.Start.Format(interval.TimestampLayout),
		item.End.Format(interval.TimestampLayout),
		fmt.Sprintf("%.2f", item.DurationHours),
		item.Shift.Code(),
	}
}
