package services

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTextTable renders table for a terminal, with a bold header and
// faint alternate rows.
func RenderTextTable(t ExportTable) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	altStyle := cellStyle.Faint(true)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return altStyle
			}
			return cellStyle
		}).
		Headers(t.Headers...)

	for _, r := range t.Rows {
		tbl.Row(r...)
	}

	return tbl.String()
}
