package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/report"
	"timesheet/shift"
)

// Renderer writes a weekly report document to path.
type Renderer interface {
	Render(path string, weekly report.WeeklyReport) error
	Extension() string
}

func RendererForFormat(format string) (Renderer, error) {
	switch normalizeFormat(format) {
	case "pdf":
		return &PDFRenderer{}, nil
	case "excel", "xlsx":
		return &ExcelRenderer{}, nil
	case "csv":
		return &CSVRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s (supported: pdf, excel, csv)", format)
	}
}

type RGB struct {
	R, G, B int
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

var (
	defaultRowColor = RGB{255, 255, 255}
	totalsRowColor  = RGB{230, 230, 230}
)

// ShiftColors are the row backgrounds per shift label.
var ShiftColors = map[shift.Label]RGB{
	shift.Overday: {185, 215, 255},
	shift.Mid:     {195, 245, 195},
	shift.Night:   {255, 255, 190},
}

// RowColor returns the background for a populated row; unlabeled rows use
// the default background.
func RowColor(label shift.Label) RGB {
	if c, ok := ShiftColors[label]; ok {
		return c
	}
	return defaultRowColor
}

var reportHeaders = []string{"Date", "Clock In", "Clock Out", "Hours", "Overtime", "Shift"}

// tableRow is one rendered line of the report table.
type tableRow struct {
	cells  []string
	filled bool
	color  RGB
}

func reportRows(weekly report.WeeklyReport) []tableRow {
	rows := make([]tableRow, 0, len(weekly.Days))
	for _, day := range weekly.Days {
		date := timeutil.DateKey(day.Date)
		if day.Empty() {
			rows = append(rows, tableRow{cells: []string{date, "", "", "", "", ""}})
			continue
		}
		rows = append(rows, tableRow{
			cells: []string{
				date,
				day.ClockIn,
				day.ClockOut,
				fmt.Sprintf("%.2f", day.Hours),
				fmt.Sprintf("%.2f", day.OvertimeHours),
				day.Shift.Code(),
			},
			filled: true,
			color:  RowColor(day.Shift),
		})
	}
	return rows
}

func totalsCells(weekly report.WeeklyReport) []string {
	return []string{
		"Totals",
		fmt.Sprintf("%.2f", weekly.Totals.Hours),
		fmt.Sprintf("%.2f", weekly.Totals.OvertimeHours),
	}
}

// ReportBaseName is the export file name without extension.
func ReportBaseName(week report.Week) string {
	return fmt.Sprintf("Timesheet_Week%02d_%d", week.ISOWeek, week.ISOYear)
}

// SafeFilename returns a path in dir for the week's report that does not
// exist yet: the plain name first, then -1, -2, ... before the extension.
func SafeFilename(dir string, week report.Week, ext string) (string, error) {
	base := ReportBaseName(week)
	candidate := filepath.Join(dir, base+ext)
	for i := 1; ; i++ {
		exists, err := fileExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// Export renders weekly into dir with a collision-free file name and returns
// the written path. Any failure is reported as a render error.
func Export(dir, format string, weekly report.WeeklyReport) (string, error) {
	renderer, err := RendererForFormat(format)
	if err != nil {
		return "", apperr.Render("select renderer", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", apperr.Render("open export directory", err)
	}
	if !info.IsDir() {
		return "", apperr.Render("open export directory", fmt.Errorf("%s is not a directory", dir))
	}

	path, err := SafeFilename(dir, weekly.Week, renderer.Extension())
	if err != nil {
		return "", apperr.Render("choose file name", err)
	}
	if err := renderer.Render(path, weekly); err != nil {
		return "", apperr.Render("write "+filepath.Base(path), err)
	}
	return path, nil
}
