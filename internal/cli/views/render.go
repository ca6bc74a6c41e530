package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/tracker"
)

var (
	doneColor    = color.New(color.FgGreen)
	todayColor   = color.New(color.Bold, color.Underline)
	outsideColor = color.New(color.Faint)
)

var weekdayHeader = []any{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderCalendar writes the month grid as a plain table.
func RenderCalendar(w io.Writer, v tracker.MonthView) {
	fmt.Fprintln(w, v.Month.Format("January 2006"))
	fmt.Fprintln(w)

	table := uitable.New()
	table.MaxColWidth = 10
	table.Separator = "  "
	table.AddRow(weekdayHeader...)

	for _, week := range v.Weeks() {
		row := make([]any, 0, constants.DaysPerWeek)
		for _, c := range week {
			row = append(row, cellText(c))
		}
		table.AddRow(row...)
	}
	fmt.Fprintln(w, table)
}

func cellText(c tracker.Cell) string {
	if !c.IsCurrentMonth {
		return outsideColor.Sprintf("%2d", c.Day)
	}

	text := fmt.Sprintf("%2d %s", c.Day, durationLabel(c.Duration))
	if c.Completed {
		text += " ✓"
		text = doneColor.Sprint(text)
	}
	if c.IsToday {
		text = todayColor.Sprint(text)
	}
	return text
}

func durationLabel(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dm", minutes)
}

// RenderSummary writes the month totals.
func RenderSummary(w io.Writer, v tracker.MonthView) {
	s := v.Summary
	table := uitable.New()
	table.AddRow("Month:", v.Month.Format(constants.MonthFormat))
	table.AddRow("Planned days:", s.PlannedDays)
	table.AddRow("Completed days:", fmt.Sprintf("%d / %d", s.CompletedDays, s.PlannedDays))
	table.AddRow("Planned minutes:", s.PlannedMinutes)
	table.AddRow("Completed minutes:", s.CompletedMinutes)
	table.AddRow("Current streak:", pluralDays(s.Streak))
	fmt.Fprintln(w, table)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RenderParseWarnings notes stored plan lines that were skipped.
func RenderParseWarnings(w io.Writer, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintf(w, "\nStored plan has %d invalid line(s):\n", len(msgs))
	fmt.Fprintln(w, "  "+strings.Join(msgs, "\n  "))
}
