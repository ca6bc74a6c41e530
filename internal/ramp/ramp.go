// Package ramp computes the default meditation length for days that have no
// plan entry: a linear climb from a start length to a target length that
// restarts on the first of every month.
package ramp

import (
	"math"
	"time"

	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/utils"
)

// DefaultConfig returns the built-in 10 to 60 minute ramp over 30 days.
func DefaultConfig() models.RampConfig {
	return models.RampConfig{
		StartDuration:  constants.DefaultStartDuration,
		TargetDuration: constants.DefaultTargetDuration,
		RampDays:       constants.DefaultRampDays,
	}
}

// DayIndex is the zero-based position of date within its own month.
func DayIndex(date time.Time) int {
	return max(0, utils.DayOffset(date, utils.FirstOfMonth(date)))
}

// DefaultDuration returns the ramp length in minutes for date.
func DefaultDuration(date time.Time, cfg models.RampConfig) int {
	if cfg.RampDays <= 1 {
		return cfg.TargetDuration
	}

	dailyIncrease := float64(cfg.TargetDuration-cfg.StartDuration) / float64(cfg.RampDays-1)
	projected := float64(cfg.StartDuration) + float64(DayIndex(date))*dailyIncrease

	rounded := roundToStep(projected, constants.RampRoundingStep)

	lo, hi := cfg.StartDuration, cfg.TargetDuration
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(rounded, lo), hi)
}

// roundToStep rounds v to the nearest multiple of step, halves rounding up.
func roundToStep(v float64, step int) int {
	s := float64(step)
	return int(math.Floor(v/s+0.5) * s)
}
