// Package days holds the single-day edit commands.
package days

import (
	"fmt"
	"time"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/utils"
)

func parseDate(raw string) (time.Time, error) {
	date, err := utils.ParseCalendarDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return date, nil
}

// withTracker loads state under the session lock and runs fn.
func withTracker(ctx *cli.Context, fn func() error) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.LoadTracker(); err != nil {
		return err
	}
	return fn()
}

type SetCmd struct {
	Date     string `arg:"" help:"Day to edit (YYYY-MM-DD)."`
	Duration string `arg:"" help:"Minutes to meditate that day."`
	Note     string `short:"n" help:"Optional note for the day."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	return withTracker(ctx, func() error {
		if err := ctx.Tracker.SetOverride(date, c.Duration, c.Note); err != nil {
			return err
		}
		entry := ctx.Tracker.Overrides[utils.ToKey(date)]
		cli.Success(ctx.Stdout(), "%s set to %d min", utils.ToKey(date), entry.Duration)
		return nil
	})
}

type ClearCmd struct {
	Date string `arg:"" help:"Day whose manual edit should be removed (YYYY-MM-DD)."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	return withTracker(ctx, func() error {
		if _, ok := ctx.Tracker.Overrides[utils.ToKey(date)]; !ok {
			fmt.Fprintf(ctx.Stdout(), "%s has no manual edit.\n", utils.ToKey(date))
			return nil
		}
		if err := ctx.Tracker.ClearOverride(date); err != nil {
			return err
		}
		cli.Success(ctx.Stdout(), "Manual edit for %s removed", utils.ToKey(date))
		return nil
	})
}

type ToggleCmd struct {
	Date string `arg:"" optional:"" help:"Day to mark (YYYY-MM-DD). Defaults to today."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	var date time.Time
	if c.Date != "" {
		d, err := parseDate(c.Date)
		if err != nil {
			return err
		}
		date = d
	}
	return withTracker(ctx, func() error {
		if date.IsZero() {
			date = ctx.Tracker.Now()
		}
		done, err := ctx.Tracker.ToggleCompletion(date)
		if err != nil {
			return err
		}
		if done {
			cli.Success(ctx.Stdout(), "%s marked complete", utils.ToKey(date))
		} else {
			fmt.Fprintf(ctx.Stdout(), "%s marked not complete\n", utils.ToKey(date))
		}
		return nil
	})
}
