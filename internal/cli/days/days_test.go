package days

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/ramp"
	"github.com/julianstephens/meditrack/internal/storage"
	"github.com/julianstephens/meditrack/internal/tracker"
	"github.com/julianstephens/meditrack/internal/validation"
)

var fixedNow = time.Date(2024, 3, 10, 7, 0, 0, 0, time.Local)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	store := storage.NewMemoryStore()
	out := &bytes.Buffer{}
	return &cli.Context{
		Store:     store,
		Tracker:   tracker.New(store, ramp.DefaultConfig(), func() time.Time { return fixedNow }),
		Backend:   cli.BackendMemory,
		Ramp:      ramp.DefaultConfig(),
		ConfigDir: t.TempDir(),
		Out:       out,
	}, out
}

func TestSetCmd(t *testing.T) {
	ctx, out := setupContext(t)

	err := (&SetCmd{Date: "2024/3/5", Duration: "22.4", Note: " before work "}).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.PlanEntry{Duration: 22, Note: "before work"}, ctx.Tracker.Overrides["2024-03-05"])
	assert.Contains(t, out.String(), "2024-03-05 set to 22 min")

	raw, ok, err := ctx.Store.Get(constants.ManualPlanKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"2024-03-05":{"duration":22,"note":"before work"}}`, raw)
}

func TestSetCmd_Invalid(t *testing.T) {
	ctx, _ := setupContext(t)

	err := (&SetCmd{Date: "yesterday", Duration: "10"}).Run(ctx)
	assert.Error(t, err)

	err = (&SetCmd{Date: "2024-03-05", Duration: "-3"}).Run(ctx)
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duration must be greater than zero", verr.Message)
}

func TestClearCmd(t *testing.T) {
	ctx, out := setupContext(t)
	require.NoError(t, (&SetCmd{Date: "2024-03-05", Duration: "10"}).Run(ctx))
	out.Reset()

	require.NoError(t, (&ClearCmd{Date: "2024-03-06"}).Run(ctx))
	assert.Contains(t, out.String(), "2024-03-06 has no manual edit.")

	require.NoError(t, (&ClearCmd{Date: "2024-03-05"}).Run(ctx))
	assert.Empty(t, ctx.Tracker.Overrides)
	_, ok, _ := ctx.Store.Get(constants.ManualPlanKey)
	assert.False(t, ok)
}

func TestToggleCmd(t *testing.T) {
	ctx, out := setupContext(t)

	require.NoError(t, (&ToggleCmd{Date: "2024-03-01"}).Run(ctx))
	assert.True(t, ctx.Tracker.Completions.IsDone("2024-03-01"))
	assert.Contains(t, out.String(), "2024-03-01 marked complete")

	require.NoError(t, (&ToggleCmd{Date: "2024-03-01"}).Run(ctx))
	assert.False(t, ctx.Tracker.Completions.IsDone("2024-03-01"))
	assert.Contains(t, out.String(), "2024-03-01 marked not complete")
}

func TestToggleCmd_DefaultsToToday(t *testing.T) {
	ctx, _ := setupContext(t)

	require.NoError(t, (&ToggleCmd{}).Run(ctx))
	assert.True(t, ctx.Tracker.Completions.IsDone("2024-03-10"))
}
