package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/meditrack/internal/utils"
)

func TestBuild_KnownMonths(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		// Jan 2024 starts on a Monday, 31 days -> 1 + 31 = 32 -> 35 cells
		{name: "january 2024", ref: time.Date(2024, 1, 17, 8, 0, 0, 0, time.Local), wantLen: 35, wantFirst: "2023-12-31", wantLast: "2024-02-03"},
		// Feb 2015 starts on a Sunday and has 28 days -> exactly 4 weeks
		{name: "february 2015", ref: time.Date(2015, 2, 1, 0, 0, 0, 0, time.Local), wantLen: 28, wantFirst: "2015-02-01", wantLast: "2015-02-28"},
		// Jun 2024 starts on a Saturday, 30 days -> 6 + 30 = 36 -> 42 cells
		{name: "june 2024", ref: time.Date(2024, 6, 30, 23, 59, 0, 0, time.Local), wantLen: 42, wantFirst: "2024-05-26", wantLast: "2024-07-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := Build(tt.ref)
			require.Len(t, cells, tt.wantLen)
			assert.Equal(t, tt.wantFirst, utils.ToKey(cells[0].Date))
			assert.Equal(t, tt.wantLast, utils.ToKey(cells[len(cells)-1].Date))
		})
	}
}

func TestBuild_Invariants(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			for _, loc := range []*time.Location{time.Local, time.UTC, ny} {
				ref := time.Date(year, month, 15, 12, 0, 0, 0, loc)
				cells := Build(ref)

				require.NotEmpty(t, cells)
				assert.Zero(t, len(cells)%7, "%s: length %d", ref, len(cells))
				assert.Equal(t, time.Sunday, cells[0].Date.Weekday(), "%s", ref)
				assert.Equal(t, time.Saturday, cells[len(cells)-1].Date.Weekday(), "%s", ref)

				seen := map[string]int{}
				for i, c := range cells {
					assert.Equal(t, c.Date.Month() == month, c.IsCurrentMonth, "%s cell %d", ref, i)
					if c.IsCurrentMonth {
						seen[utils.ToKey(c.Date)]++
					}
					if i > 0 {
						assert.Equal(t, 1, utils.DayOffset(c.Date, cells[i-1].Date), "%s cell %d", ref, i)
					}
				}
				assert.Len(t, seen, utils.DaysIn(ref))
				for k, n := range seen {
					assert.Equal(t, 1, n, "day %s", k)
				}
				assert.Less(t, len(cells)-7, LeadingDays(ref)+utils.DaysIn(ref), "no fully spilled row")
			}
		}
	}
}

func TestWeeks(t *testing.T) {
	rows := Weeks(Build(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)))
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Len(t, row, 7)
		assert.Equal(t, time.Sunday, row[0].Date.Weekday())
	}
}
