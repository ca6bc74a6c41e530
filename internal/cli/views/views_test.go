package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/ramp"
	"github.com/julianstephens/meditrack/internal/storage"
	"github.com/julianstephens/meditrack/internal/tracker"
)

var fixedNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(constants.PlanTextKey, "2024-01-05,20\n2024-01-06,30,long sit\n2024-02-01,40\n"))
	require.NoError(t, store.Set(constants.CompletionsKey, `{"2024-01-05":true}`))

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:   store,
		Tracker: tracker.New(store, ramp.DefaultConfig(), func() time.Time { return fixedNow }),
		Backend: cli.BackendMemory,
		Out:     out,
	}, out
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupContext(t)

	require.NoError(t, (&CalendarCmd{}).Run(ctx))

	got := out.String()
	assert.Contains(t, got, "January 2024")
	assert.Contains(t, got, "Sun")
	assert.Contains(t, got, "5 20m ✓")
	assert.Contains(t, got, "6 30m")
	assert.NotContains(t, got, "Stored plan has")
}

func TestCalendarCmd_Month(t *testing.T) {
	ctx, out := setupContext(t)

	require.NoError(t, (&CalendarCmd{MonthFlag{Month: "2024-02"}}).Run(ctx))

	got := out.String()
	assert.Contains(t, got, "February 2024")
	assert.Contains(t, got, "1 40m")
}

func TestCalendarCmd_ParseWarnings(t *testing.T) {
	ctx, out := setupContext(t)
	require.NoError(t, ctx.Store.Set(constants.PlanTextKey, "2024-01-05,20\n2024-01-06,abc\n"))

	require.NoError(t, (&CalendarCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Stored plan has 1 invalid line(s):")
	assert.Contains(t, out.String(), "Line 2: duration should be a positive number.")
}

func TestCalendarCmd_InvalidMonth(t *testing.T) {
	ctx, _ := setupContext(t)

	err := (&CalendarCmd{MonthFlag{Month: "January"}}).Run(ctx)
	assert.ErrorContains(t, err, "invalid month")
}

func TestSummaryCmd(t *testing.T) {
	ctx, out := setupContext(t)

	require.NoError(t, (&SummaryCmd{}).Run(ctx))

	got := out.String()
	assert.Contains(t, got, "2024-01")
	assert.Contains(t, got, "1 / 2")
	assert.Contains(t, got, "50")
	assert.Contains(t, got, "0 days")
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "-", durationLabel(0))
	assert.Equal(t, "45m", durationLabel(45))
}

func TestPluralDays(t *testing.T) {
	assert.Equal(t, "1 day", pluralDays(1))
	assert.Equal(t, "3 days", pluralDays(3))
}
