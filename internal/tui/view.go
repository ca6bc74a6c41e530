package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/meditrack/internal/planner"
	"github.com/julianstephens/meditrack/internal/tracker"
	"github.com/julianstephens/meditrack/internal/utils"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateEditing && m.form != nil {
		parts := []string{m.form.View()}
		if m.err != "" {
			parts = append(parts, errorStyle.Render(m.err))
		}
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}

	v := m.tracker.View()
	parts := []string{
		m.viewHeader(v),
		m.viewGrid(v),
		m.viewDetail(v),
	}
	switch {
	case m.err != "":
		parts = append(parts, errorStyle.Render(m.err))
	case m.status != "":
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewHeader(v tracker.MonthView) string {
	s := v.Summary
	summary := fmt.Sprintf("%d/%d days · %d/%d min · streak %d",
		s.CompletedDays, s.PlannedDays, s.CompletedMinutes, s.PlannedMinutes, s.Streak)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.Month.Format("January 2006")),
		summaryStyle.Render(summary),
		"",
	)
}

func (m Model) viewGrid(v tracker.MonthView) string {
	header := make([]string, 0, len(weekdays))
	for _, d := range weekdays {
		header = append(header, weekdayStyle.Render(d))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range v.Weeks() {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, m.renderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(c tracker.Cell) string {
	if !c.IsCurrentMonth {
		return outsideCellStyle.Render(fmt.Sprintf("%2d", c.Day))
	}

	top := fmt.Sprintf("%2d", c.Day)
	if c.Completed {
		top += " ✓"
	}
	bottom := "  -"
	if c.Duration > 0 {
		bottom = fmt.Sprintf("  %dm", c.Duration)
		if c.Source == planner.SourceOverride {
			bottom += "*"
		}
	}
	text := top + "\n" + bottom

	switch {
	case utils.SameDay(c.Date, m.cursor):
		return cursorCellStyle.Render(text)
	case c.IsToday:
		return todayCellStyle.Render(text)
	case c.Completed:
		return doneCellStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

func (m Model) viewDetail(v tracker.MonthView) string {
	c, ok := v.Cell(m.cursor)
	if !ok {
		return ""
	}

	parts := []string{c.Date.Format("Mon Jan 2")}
	if c.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min (%s)", c.Duration, sourceLabel(c.Source)))
	} else {
		parts = append(parts, "no session planned")
	}
	if c.Completed {
		parts = append(parts, "done")
	}
	if c.Note != "" {
		parts = append(parts, c.Note)
	}
	return detailStyle.Render(strings.Join(parts, " · "))
}

func sourceLabel(s planner.Source) string {
	switch s {
	case planner.SourceOverride:
		return "manual"
	case planner.SourcePlan:
		return "plan"
	case planner.SourceDefault:
		return "default ramp"
	default:
		return string(s)
	}
}
