package output

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"timesheet/report"
)

const pdfRowHeight = 9.0

var pdfColumnWidths = []float64{34, 34, 34, 26, 26, 20}

type PDFRenderer struct{}

func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (r *PDFRenderer) Render(path string, weekly report.WeeklyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, weekly.Title(), "", 0, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range reportHeaders {
		pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range reportRows(weekly) {
		if row.filled {
			pdf.SetFillColor(row.color.R, row.color.G, row.color.B)
		}
		for i, value := range row.cells {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, value, "1", 0, "C", row.filled, 0, "")
		}
		pdf.Ln(-1)
	}

	totals := totalsCells(weekly)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(totalsRowColor.R, totalsRowColor.G, totalsRowColor.B)
	pdf.CellFormat(pdfColumnWidths[0]+pdfColumnWidths[1]+pdfColumnWidths[2], pdfRowHeight, totals[0], "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColumnWidths[3], pdfRowHeight, totals[1], "1", 0, "C", true, 0, "")
	pdf.CellFormat(pdfColumnWidths[4], pdfRowHeight, totals[2], "1", 0, "C", true, 0, "")
	pdf.CellFormat(pdfColumnWidths[5], pdfRowHeight, "", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save pdf output %s: %w", path, err)
	}
	return nil
}
