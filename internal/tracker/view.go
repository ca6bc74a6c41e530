package tracker

import (
	"time"

	"github.com/julianstephens/meditrack/internal/calendar"
	"github.com/julianstephens/meditrack/internal/planner"
	"github.com/julianstephens/meditrack/internal/utils"
)

// Cell is one rendered day of the month grid.
type Cell struct {
	Key            string
	Date           time.Time
	Day            int
	IsCurrentMonth bool
	IsToday        bool
	Duration       int // minutes, 0 when unplanned
	Note           string
	Source         planner.Source
	Completed      bool
}

// Summary totals the days of the displayed month.
type Summary struct {
	PlannedDays      int
	CompletedDays    int
	PlannedMinutes   int
	CompletedMinutes int
	// Streak counts consecutive completed days up to today. An unfinished
	// today does not break it.
	Streak int
}

type MonthView struct {
	Month   time.Time
	Cells   []Cell
	Summary Summary
}

// Weeks splits the cells into rows of seven.
func (v MonthView) Weeks() [][]Cell {
	var rows [][]Cell
	for i := 0; i+7 <= len(v.Cells); i += 7 {
		rows = append(rows, v.Cells[i:i+7])
	}
	return rows
}

// Cell returns the cell for date, if it is on the grid.
func (v MonthView) Cell(date time.Time) (Cell, bool) {
	key := utils.ToKey(date)
	for _, c := range v.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// View derives the grid and summary for the current month. It never writes.
func (t *Tracker) View() MonthView {
	resolver := t.Resolver()
	today := utils.StartOfDay(t.now())

	grid := calendar.Build(t.Month)
	cells := make([]Cell, 0, len(grid))
	var sum Summary

	for _, gc := range grid {
		key := utils.ToKey(gc.Date)
		eff := resolver.Lookup(gc.Date)
		c := Cell{
			Key:            key,
			Date:           gc.Date,
			Day:            gc.Date.Day(),
			IsCurrentMonth: gc.IsCurrentMonth,
			IsToday:        utils.SameDay(gc.Date, today),
			Duration:       eff.Duration,
			Note:           eff.Note,
			Source:         eff.Source,
			Completed:      t.Completions.IsDone(key),
		}
		cells = append(cells, c)

		if !c.IsCurrentMonth {
			continue
		}
		if eff.Planned() {
			sum.PlannedDays++
			sum.PlannedMinutes += eff.Duration
		}
		if c.Completed {
			sum.CompletedDays++
			sum.CompletedMinutes += eff.Duration
		}
	}

	sum.Streak = t.streak(today)
	return MonthView{Month: t.Month, Cells: cells, Summary: sum}
}

func (t *Tracker) streak(today time.Time) int {
	day := today
	if !t.Completions.IsDone(utils.ToKey(day)) {
		day = utils.AddDays(day, -1)
	}
	n := 0
	for t.Completions.IsDone(utils.ToKey(day)) {
		n++
		day = utils.AddDays(day, -1)
	}
	return n
}

// Summary is shorthand for View().Summary.
func (t *Tracker) Summary() Summary {
	return t.View().Summary
}
