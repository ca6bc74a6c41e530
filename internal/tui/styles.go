package tui

import "github.com/charmbracelet/lipgloss"

const cellWidth = 9

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	weekdayStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("240")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(2)

	outsideCellStyle = cellStyle.
				Foreground(lipgloss.Color("238"))

	doneCellStyle = cellStyle.
			Foreground(lipgloss.Color("42"))

	todayCellStyle = cellStyle.
			Underline(true).
			Bold(true)

	cursorCellStyle = cellStyle.
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("205"))

	detailStyle = lipgloss.NewStyle().
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)
