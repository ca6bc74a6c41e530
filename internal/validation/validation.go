package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/utils"
)

// ValidationError is shown next to the field that failed in the day editor.
// It blocks the save but never affects any other day.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DayEdit is the raw input of the single-day editor.
type DayEdit struct {
	Date     string
	Duration string
	Note     string
}

// ParseDuration validates a duration typed into the day editor and rounds it
// to whole minutes.
func ParseDuration(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &ValidationError{Field: "duration", Message: "enter a duration in minutes"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "duration", Message: fmt.Sprintf("%q is not a number", s)}
	}
	if v <= 0 {
		return 0, &ValidationError{Field: "duration", Message: "duration must be greater than zero"}
	}
	return max(1, int(math.Floor(v+0.5))), nil
}

// ValidateDayEdit checks a single-day edit and returns the day key and entry
// to store.
func ValidateDayEdit(edit DayEdit) (string, models.PlanEntry, error) {
	day, err := utils.ParseKey(strings.TrimSpace(edit.Date))
	if err != nil {
		return "", models.PlanEntry{}, &ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", edit.Date)}
	}
	minutes, err := ParseDuration(edit.Duration)
	if err != nil {
		return "", models.PlanEntry{}, err
	}
	return utils.ToKey(day), models.PlanEntry{Duration: minutes, Note: strings.TrimSpace(edit.Note)}, nil
}

// ValidateRampConfig rejects ramp settings that cannot produce a usable ramp.
func ValidateRampConfig(cfg models.RampConfig) error {
	if cfg.StartDuration <= 0 {
		return &ValidationError{Field: "start-duration", Message: "must be greater than zero"}
	}
	if cfg.TargetDuration < cfg.StartDuration {
		return &ValidationError{Field: "target-duration", Message: fmt.Sprintf("must be at least the start duration (%d)", cfg.StartDuration)}
	}
	if cfg.RampDays < 0 {
		return &ValidationError{Field: "ramp-days", Message: "must not be negative"}
	}
	return nil
}
