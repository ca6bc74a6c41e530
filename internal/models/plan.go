package models

import (
	"sort"
	"time"
)

// PlanEntry is the planned session length for a single day.
// Entries are replaced wholesale, never mutated in place.
type PlanEntry struct {
	Duration int    `json:"duration"` // minutes
	Note     string `json:"note,omitempty"`
}

// PlanMap maps a day key (YYYY-MM-DD) to its plan entry.
// It is used both for the parsed CSV plan and for manual overrides.
type PlanMap map[string]PlanEntry

// Clone returns a shallow copy of the map. A nil map clones to an empty one.
func (p PlanMap) Clone() PlanMap {
	out := make(PlanMap, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// CompletionMap records which days have been completed.
// A missing key means not completed.
type CompletionMap map[string]bool

// IsDone reports whether the day has been marked complete.
func (c CompletionMap) IsDone(day string) bool {
	return c[day]
}

// Toggle flips the completion state of day and returns the new state.
// Toggling off deletes the key so the map only ever holds completed days.
func (c CompletionMap) Toggle(day string) bool {
	if c[day] {
		delete(c, day)
		return false
	}
	c[day] = true
	return true
}

// Normalize drops explicit false entries left behind by older payloads.
func (c CompletionMap) Normalize() {
	for k, v := range c {
		if !v {
			delete(c, k)
		}
	}
}

// CalendarCell is one square of a month grid. Cells are derived data and never persisted.
type CalendarCell struct {
	Date           time.Time
	IsCurrentMonth bool
}

// RampConfig describes the default linear ramp used for days without a plan entry.
type RampConfig struct {
	StartDuration  int `json:"start_duration"`
	TargetDuration int `json:"target_duration"`
	RampDays       int `json:"ramp_days"`
}

// SortedKeys returns the day keys in calendar order.
// YYYY-MM-DD keys sort chronologically as plain strings.
func (p PlanMap) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
