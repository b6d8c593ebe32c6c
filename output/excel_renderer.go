package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"timesheet/report"
)

type ExcelRenderer struct{}

func (r *ExcelRenderer) Extension() string {
	return ".xlsx"
}

func (r *ExcelRenderer) Render(path string, weekly report.WeeklyReport) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetName(sheet, weekly.Label()); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}
	sheet = weekly.Label()

	styles := newExcelStyles(file)

	if err := file.SetCellValue(sheet, "A1", weekly.Title()); err != nil {
		return fmt.Errorf("set excel title: %w", err)
	}
	if err := file.MergeCell(sheet, "A1", "F1"); err != nil {
		return fmt.Errorf("merge excel title: %w", err)
	}
	styles.apply(sheet, "A1", "A1", styles.title())

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}
	styles.apply(sheet, "A2", "F2", styles.header())

	row := 3
	for _, line := range reportRows(weekly) {
		for col, value := range line.cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(line.cells), row)
		if line.filled {
			styles.apply(sheet, first, last, styles.filled(line.color))
		} else {
			styles.apply(sheet, first, last, styles.plain())
		}
		row++
	}

	totals := totalsCells(weekly)
	values := []string{totals[0], "", "", totals[1], totals[2], ""}
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set excel totals %s: %w", cell, err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	third, _ := excelize.CoordinatesToCellName(3, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	if err := file.MergeCell(sheet, first, third); err != nil {
		return fmt.Errorf("merge excel totals: %w", err)
	}
	styles.apply(sheet, first, last, styles.totals())

	if styles.err != nil {
		return styles.err
	}
	if err := file.SetColWidth(sheet, "A", "C", 14); err != nil {
		return fmt.Errorf("set excel column width: %w", err)
	}
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

// excelStyles creates cell styles lazily and keeps the first error.
type excelStyles struct {
	file  *excelize.File
	cache map[string]int
	err   error
}

func newExcelStyles(file *excelize.File) *excelStyles {
	return &excelStyles{file: file, cache: make(map[string]int)}
}

func (s *excelStyles) get(key string, style *excelize.Style) int {
	if id, ok := s.cache[key]; ok {
		return id
	}
	id, err := s.file.NewStyle(style)
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("create excel style %s: %w", key, err)
	}
	s.cache[key] = id
	return id
}

func (s *excelStyles) apply(sheet, from, to string, styleID int) {
	if s.err != nil {
		return
	}
	if err := s.file.SetCellStyle(sheet, from, to, styleID); err != nil {
		s.err = fmt.Errorf("set excel style %s:%s: %w", from, to, err)
	}
}

func cellBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func (s *excelStyles) title() int {
	return s.get("title", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func (s *excelStyles) header() int {
	return s.get("header", &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    cellBorders(),
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func (s *excelStyles) plain() int {
	return s.get("plain", &excelize.Style{
		Border:    cellBorders(),
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func (s *excelStyles) filled(color RGB) int {
	return s.get("fill"+color.Hex(), &excelize.Style{
		Border:    cellBorders(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color.Hex()}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func (s *excelStyles) totals() int {
	return s.get("totals", &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    cellBorders(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalsRowColor.Hex()}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
