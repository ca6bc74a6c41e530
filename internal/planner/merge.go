// Package planner combines the parsed CSV plan, manual single-day overrides
// and the default ramp into the duration shown for each day.
package planner

import (
	"time"

	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/ramp"
	"github.com/julianstephens/meditrack/internal/utils"
)

// Source names where a day's effective duration came from.
type Source string

const (
	SourceOverride Source = "override"
	SourcePlan     Source = "plan"
	SourceDefault  Source = "default"
	SourceNone     Source = "none"
)

// Merge layers overrides on top of a copy of parsed. An override with a
// positive duration replaces the parsed entry; a zero or negative one removes
// the day from the result. Neither input is modified.
func Merge(parsed, overrides models.PlanMap) models.PlanMap {
	out := parsed.Clone()
	for day, entry := range overrides {
		if entry.Duration > 0 {
			out[day] = entry
		} else {
			delete(out, day)
		}
	}
	return out
}

// Effective is the resolved plan for one day.
type Effective struct {
	Duration int // minutes, 0 when unplanned
	Note     string
	Source   Source
}

// Planned reports whether the day has a duration to show.
func (e Effective) Planned() bool {
	return e.Duration > 0
}

// Resolver answers per-day lookups against one merged plan.
type Resolver struct {
	merged    models.PlanMap
	overrides models.PlanMap
	ramp      models.RampConfig
}

// NewResolver merges parsed and overrides once for repeated lookups.
func NewResolver(parsed, overrides models.PlanMap, cfg models.RampConfig) *Resolver {
	return &Resolver{
		merged:    Merge(parsed, overrides),
		overrides: overrides,
		ramp:      cfg,
	}
}

// Merged returns the effective plan map. Callers must not modify it.
func (r *Resolver) Merged() models.PlanMap {
	return r.merged
}

// HasPlanData reports whether any day anywhere has a plan or override entry.
func (r *Resolver) HasPlanData() bool {
	return len(r.merged) > 0
}

// Lookup resolves the duration for date: override, then parsed plan, then the
// default ramp. The ramp is only consulted while no plan data exists at all;
// once any entry exists, days without one are reported as unplanned.
func (r *Resolver) Lookup(date time.Time) Effective {
	day := utils.ToKey(date)
	if entry, ok := r.merged[day]; ok {
		src := SourcePlan
		if o, isOverride := r.overrides[day]; isOverride && o.Duration > 0 {
			src = SourceOverride
		}
		return Effective{Duration: entry.Duration, Note: entry.Note, Source: src}
	}
	if r.HasPlanData() {
		return Effective{Source: SourceNone}
	}
	return Effective{Duration: ramp.DefaultDuration(date, r.ramp), Source: SourceDefault}
}

// DatedEntry pairs a plan entry with its day for ordered display.
type DatedEntry struct {
	Day string
	models.PlanEntry
}

// SortedEntries lists plan entries in calendar order.
func SortedEntries(plan models.PlanMap) []DatedEntry {
	keys := plan.SortedKeys()
	out := make([]DatedEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, DatedEntry{Day: k, PlanEntry: plan[k]})
	}
	return out
}
