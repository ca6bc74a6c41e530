package calendar

import (
	"time"

	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/utils"
)

// LeadingDays returns how many cells from the previous month precede the
// first of ref's month when weeks start on Sunday.
func LeadingDays(ref time.Time) int {
	return int(utils.FirstOfMonth(ref).Weekday())
}

// Build returns the month grid for ref's month: whole Sunday-to-Saturday weeks
// covering every day of the month, padded with days from the neighbouring
// months.
func Build(ref time.Time) []models.CalendarCell {
	first := utils.FirstOfMonth(ref)
	leading := LeadingDays(first)
	days := utils.DaysIn(first)

	weeks := (leading + days + constants.DaysPerWeek - 1) / constants.DaysPerWeek
	cells := make([]models.CalendarCell, 0, weeks*constants.DaysPerWeek)

	for i := 0; i < weeks*constants.DaysPerWeek; i++ {
		date := utils.AddDays(first, i-leading)
		cells = append(cells, models.CalendarCell{
			Date:           date,
			IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
		})
	}
	return cells
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []models.CalendarCell) [][]models.CalendarCell {
	var rows [][]models.CalendarCell
	for i := 0; i+constants.DaysPerWeek <= len(cells); i += constants.DaysPerWeek {
		rows = append(rows, cells[i:i+constants.DaysPerWeek])
	}
	return rows
}
