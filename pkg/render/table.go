package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/coursefinder/pkg/catalog"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorWhite = lipgloss.Color("255")

	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	idStyle     = lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	openStyle   = lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1).Align(lipgloss.Right)
	closedStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1).Align(lipgloss.Right)
)

const (
	colCourseID = 0
	colSeats    = 5
)

// Table renders rows as a styled terminal table. Courses with open seats
// are highlighted.
func Table(rows []catalog.Row) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(catalog.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colCourseID:
				return idStyle
			case col == colSeats:
				if row < len(rows) && rows[row].SeatsOpen > 0 {
					return openStyle
				}
				return closedStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}
