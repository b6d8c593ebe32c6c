package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"timesheet/report"
)

// RenderTerminal formats a weekly report as a bordered table for the
// terminal, tinting populated rows with their shift colour.
func RenderTerminal(weekly report.WeeklyReport) string {
	rows := reportRows(weekly)
	totals := totalsCells(weekly)

	cells := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		cells = append(cells, row.cells)
	}
	cells = append(cells, []string{totals[0], "", "", totals[1], totals[2], ""})
	totalsIndex := len(cells) - 1

	base := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := base.Bold(true).Align(lipgloss.Center)
	totalsStyle := base.Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(totalsRowColor.Hex()))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(reportHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == totalsIndex:
				return totalsStyle
			case row >= 0 && row < len(rows) && rows[row].filled:
				return base.
					Foreground(lipgloss.Color("#000000")).
					Background(lipgloss.Color(rows[row].color.Hex()))
			default:
				return base
			}
		})

	return fmt.Sprintf("%s\n%s\n", weekly.Title(), t.Render())
}
