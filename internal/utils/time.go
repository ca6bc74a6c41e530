package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/meditrack/internal/constants"
)

// lenientDateFormats are tried in order when reading dates typed by people.
var lenientDateFormats = []string{
	constants.DateFormat,
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// StartOfDay returns midnight of t's calendar day in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ToKey returns the canonical YYYY-MM-DD key for the calendar day t falls on.
// The time of day is ignored and no timezone conversion happens.
func ToKey(t time.Time) string {
	return StartOfDay(t).Format(constants.DateFormat)
}

// ParseKey parses a YYYY-MM-DD key into local midnight of that day.
func ParseKey(key string) (time.Time, error) {
	return ParseDateInLocation(key, time.Local)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseCalendarDate reads a calendar date in any of the accepted layouts and
// returns local midnight of the day as written. Timestamps keep the day they
// name rather than being converted to local time.
func ParseCalendarDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range lenientDateFormats {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local), nil
}

// DayOffset returns the number of whole calendar days from b to a.
// Both days are projected onto UTC midnight so DST shifts never change the count.
func DayOffset(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}

// AddDays moves t by n calendar days, keeping midnight across DST changes.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths moves to the first of the month n months away from t.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return ToKey(a) == ToKey(b)
}
