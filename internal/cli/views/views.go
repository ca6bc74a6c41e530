// Package views holds the read-only calendar and summary commands.
package views

import (
	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/utils"
)

// MonthFlag selects the month to display.
type MonthFlag struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month." placeholder:"YYYY-MM"`
}

func (f MonthFlag) apply(ctx *cli.Context) error {
	if err := ctx.LoadTracker(); err != nil {
		return err
	}
	if f.Month == "" {
		return nil
	}
	month, err := utils.ParseMonth(f.Month)
	if err != nil {
		return err
	}
	ctx.Tracker.GoToMonth(month)
	return nil
}

type CalendarCmd struct {
	MonthFlag
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	if err := c.apply(ctx); err != nil {
		return err
	}
	w := ctx.Stdout()
	RenderCalendar(w, ctx.Tracker.View())
	RenderParseWarnings(w, ctx.Tracker.ParseErrors)
	return nil
}

type SummaryCmd struct {
	MonthFlag
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	if err := c.apply(ctx); err != nil {
		return err
	}
	RenderSummary(ctx.Stdout(), ctx.Tracker.View())
	return nil
}
