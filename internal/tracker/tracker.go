// Package tracker owns the application state of a meditation ramp: the
// applied plan text, manual overrides, completions and the month on screen.
// Every change is written through the storage gateway before it returns, so a
// fresh Load always sees the last successful change.
package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/csvplan"
	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/planner"
	"github.com/julianstephens/meditrack/internal/storage"
	"github.com/julianstephens/meditrack/internal/utils"
	"github.com/julianstephens/meditrack/internal/validation"
)

type Tracker struct {
	store storage.Gateway
	ramp  models.RampConfig
	now   func() time.Time

	PlanText    string
	Plan        models.PlanMap
	ParseErrors []string
	Overrides   models.PlanMap
	Completions models.CompletionMap
	Month       time.Time
}

// New returns an empty tracker. Call Load to read persisted state.
func New(store storage.Gateway, cfg models.RampConfig, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		store:       store,
		ramp:        cfg,
		now:         now,
		Plan:        models.PlanMap{},
		Overrides:   models.PlanMap{},
		Completions: models.CompletionMap{},
		Month:       utils.FirstOfMonth(now()),
	}
}

// Load reads plan text, completions and overrides from the store. Values that
// fail to decode are logged and treated as empty.
func (t *Tracker) Load() error {
	text, _, err := t.store.Get(constants.PlanTextKey)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	t.PlanText = text
	res := csvplan.Parse(text)
	t.Plan = res.Plan
	t.ParseErrors = res.Messages()
	if len(t.ParseErrors) > 0 {
		logger.Warn("Stored plan has errors", "count", len(t.ParseErrors))
	}

	completions, err := loadJSON[models.CompletionMap](t, constants.CompletionsKey)
	if err != nil {
		return err
	}
	completions.Normalize()
	t.Completions = completions

	overrides, err := loadJSON[models.PlanMap](t, constants.ManualPlanKey)
	if err != nil {
		return err
	}
	t.Overrides = overrides

	t.Month = utils.FirstOfMonth(t.now())
	logger.Debug("Loaded tracker state",
		"plan_days", len(t.Plan),
		"overrides", len(t.Overrides),
		"completions", len(t.Completions))
	return nil
}

// loadJSON decodes the map stored under key. Only store failures are
// returned; an undecodable payload is logged and yields an empty map.
func loadJSON[M ~map[string]V, V any](t *Tracker, key string) (M, error) {
	raw, ok, err := t.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	out := M{}
	if !ok || strings.TrimSpace(raw) == "" {
		return out, nil
	}
	var decoded M
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.Warn("Discarding unreadable stored value", "key", key, "error", err)
		return out, nil
	}
	if decoded == nil {
		return out, nil
	}
	return decoded, nil
}

func (t *Tracker) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := t.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// ApplyPlan parses text, stores it verbatim and replaces the plan with the
// valid lines. Errored lines are skipped and reported in the result.
func (t *Tracker) ApplyPlan(text string) (csvplan.Result, error) {
	res := csvplan.Parse(text)

	if err := t.store.Set(constants.PlanTextKey, text); err != nil {
		return res, fmt.Errorf("failed to save plan: %w", err)
	}
	t.PlanText = text
	t.Plan = res.Plan
	t.ParseErrors = res.Messages()
	if res.HasErrors() {
		logger.Warn("Plan applied with line errors", "days", len(res.Plan), "errors", len(res.Errors))
	} else {
		logger.Info("Plan applied", "days", len(res.Plan))
	}
	return res, nil
}

// ResetPlan drops the plan text and every override. Completions are kept.
func (t *Tracker) ResetPlan() error {
	if err := t.store.Remove(constants.PlanTextKey); err != nil {
		return fmt.Errorf("failed to remove plan: %w", err)
	}
	if err := t.store.Remove(constants.ManualPlanKey); err != nil {
		return fmt.Errorf("failed to remove overrides: %w", err)
	}
	t.PlanText = ""
	t.Plan = models.PlanMap{}
	t.ParseErrors = nil
	t.Overrides = models.PlanMap{}
	logger.Info("Plan reset")
	return nil
}

// SetOverride stores a manual duration and note for one day. Invalid input
// returns a *validation.ValidationError and changes nothing.
func (t *Tracker) SetOverride(date time.Time, duration, note string) error {
	day, entry, err := validation.ValidateDayEdit(validation.DayEdit{
		Date:     utils.ToKey(date),
		Duration: duration,
		Note:     note,
	})
	if err != nil {
		return err
	}

	next := t.Overrides.Clone()
	next[day] = entry
	if err := t.saveJSON(constants.ManualPlanKey, next); err != nil {
		return err
	}
	t.Overrides = next
	logger.Debug("Override set", "day", day, "duration", entry.Duration)
	return nil
}

// ClearOverride removes the manual entry for date, if any.
func (t *Tracker) ClearOverride(date time.Time) error {
	day := utils.ToKey(date)
	if _, ok := t.Overrides[day]; !ok {
		return nil
	}

	next := t.Overrides.Clone()
	delete(next, day)

	if len(next) == 0 {
		if err := t.store.Remove(constants.ManualPlanKey); err != nil {
			return fmt.Errorf("failed to remove overrides: %w", err)
		}
	} else if err := t.saveJSON(constants.ManualPlanKey, next); err != nil {
		return err
	}
	t.Overrides = next
	logger.Debug("Override cleared", "day", day)
	return nil
}

// ToggleCompletion flips the completion flag for date and returns the new state.
func (t *Tracker) ToggleCompletion(date time.Time) (bool, error) {
	day := utils.ToKey(date)
	next := models.CompletionMap{}
	for k, v := range t.Completions {
		next[k] = v
	}
	done := next.Toggle(day)

	if err := t.saveJSON(constants.CompletionsKey, next); err != nil {
		return t.Completions.IsDone(day), err
	}
	t.Completions = next
	return done, nil
}

func (t *Tracker) NextMonth() {
	t.Month = utils.AddMonths(t.Month, 1)
}

func (t *Tracker) PrevMonth() {
	t.Month = utils.AddMonths(t.Month, -1)
}

// GoToMonth shows the month containing date.
func (t *Tracker) GoToMonth(date time.Time) {
	t.Month = utils.FirstOfMonth(date)
}

// Resolver returns a lookup over the current plan, overrides and ramp.
func (t *Tracker) Resolver() *planner.Resolver {
	return planner.NewResolver(t.Plan, t.Overrides, t.ramp)
}

// EffectivePlan returns the merged plan and overrides.
func (t *Tracker) EffectivePlan() models.PlanMap {
	return planner.Merge(t.Plan, t.Overrides)
}

func (t *Tracker) Ramp() models.RampConfig {
	return t.ramp
}

func (t *Tracker) Now() time.Time {
	return t.now()
}
