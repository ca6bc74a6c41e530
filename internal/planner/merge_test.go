package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/ramp"
)

func TestMerge(t *testing.T) {
	parsed := models.PlanMap{
		"2024-01-01": {Duration: 15, Note: "Ease in"},
		"2024-01-02": {Duration: 20},
		"2024-01-03": {Duration: 25},
	}
	overrides := models.PlanMap{
		"2024-01-02": {Duration: 30, Note: "retreat"},
		"2024-01-03": {Duration: 0},
		"2024-01-09": {Duration: 12},
		"2024-01-10": {Duration: -4},
	}

	merged := Merge(parsed, overrides)

	assert.Equal(t, models.PlanMap{
		"2024-01-01": {Duration: 15, Note: "Ease in"},
		"2024-01-02": {Duration: 30, Note: "retreat"},
		"2024-01-09": {Duration: 12},
	}, merged)

	// inputs are untouched
	assert.Len(t, parsed, 3)
	assert.Equal(t, 25, parsed["2024-01-03"].Duration)
	assert.Len(t, overrides, 4)
}

func TestMerge_ZeroOverrideNeverYieldsZeroEntry(t *testing.T) {
	parsed := models.PlanMap{"2024-05-05": {Duration: 40}}
	merged := Merge(parsed, models.PlanMap{"2024-05-05": {Duration: 0}})

	_, ok := merged["2024-05-05"]
	assert.False(t, ok)
	for _, e := range merged {
		assert.Positive(t, e.Duration)
	}
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, models.PlanMap{}, Merge(nil, nil))
	assert.Equal(t, models.PlanMap{"2024-01-01": {Duration: 5}}, Merge(nil, models.PlanMap{"2024-01-01": {Duration: 5}}))
}

func date(d int) time.Time {
	return time.Date(2024, time.January, d, 18, 30, 0, 0, time.Local)
}

func TestResolverLookup(t *testing.T) {
	parsed := models.PlanMap{
		"2024-01-01": {Duration: 15, Note: "Ease in"},
		"2024-01-02": {Duration: 20},
	}
	overrides := models.PlanMap{"2024-01-02": {Duration: 45, Note: "long"}}
	r := NewResolver(parsed, overrides, ramp.DefaultConfig())

	assert.Equal(t, Effective{Duration: 15, Note: "Ease in", Source: SourcePlan}, r.Lookup(date(1)))
	assert.Equal(t, Effective{Duration: 45, Note: "long", Source: SourceOverride}, r.Lookup(date(2)))

	unplanned := r.Lookup(date(3))
	assert.Equal(t, SourceNone, unplanned.Source)
	assert.False(t, unplanned.Planned())
}

// The default ramp only fills days while there is no plan data anywhere. As
// soon as a single plan or override entry exists, every other day shows as
// unplanned instead of falling back to the ramp.
func TestEffectiveDuration_DefaultRampOnlyWhenNoPlanData(t *testing.T) {
	cfg := ramp.DefaultConfig()

	t.Run("no plan data uses ramp", func(t *testing.T) {
		r := NewResolver(models.PlanMap{}, models.PlanMap{}, cfg)
		got := r.Lookup(date(15))
		assert.Equal(t, SourceDefault, got.Source)
		assert.Equal(t, ramp.DefaultDuration(date(15), cfg), got.Duration)
		assert.False(t, r.HasPlanData())
	})

	t.Run("plan entry in another month blanks this month", func(t *testing.T) {
		r := NewResolver(models.PlanMap{"2023-06-01": {Duration: 10}}, nil, cfg)
		got := r.Lookup(date(15))
		assert.Equal(t, SourceNone, got.Source)
		assert.Zero(t, got.Duration)
	})

	t.Run("single override blanks other days", func(t *testing.T) {
		r := NewResolver(nil, models.PlanMap{"2024-01-20": {Duration: 10}}, cfg)
		assert.Equal(t, SourceNone, r.Lookup(date(15)).Source)
		assert.Equal(t, SourceOverride, r.Lookup(date(20)).Source)
	})

	t.Run("deleting the only entry restores the ramp", func(t *testing.T) {
		r := NewResolver(models.PlanMap{"2024-01-20": {Duration: 10}}, models.PlanMap{"2024-01-20": {Duration: 0}}, cfg)
		assert.False(t, r.HasPlanData())
		assert.Equal(t, SourceDefault, r.Lookup(date(20)).Source)
	})
}

func TestSortedEntries(t *testing.T) {
	entries := SortedEntries(models.PlanMap{
		"2024-01-10": {Duration: 30},
		"2024-01-02": {Duration: 10, Note: "first"},
	})

	assert.Equal(t, []DatedEntry{
		{Day: "2024-01-02", PlanEntry: models.PlanEntry{Duration: 10, Note: "first"}},
		{Day: "2024-01-10", PlanEntry: models.PlanEntry{Duration: 30}},
	}, entries)
}
