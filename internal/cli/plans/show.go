package plans

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/csvplan"
	"github.com/julianstephens/meditrack/internal/planner"
	"github.com/julianstephens/meditrack/internal/utils"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadTracker(); err != nil {
		return err
	}
	w := ctx.Stdout()

	resolver := ctx.Tracker.Resolver()
	if !resolver.HasPlanData() {
		cfg := ctx.Tracker.Ramp()
		fmt.Fprintf(w, "No plan applied. Days follow the default ramp (%d to %d min over %d days each month).\n",
			cfg.StartDuration, cfg.TargetDuration, cfg.RampDays)
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 50
	table.Wrap = true
	table.AddRow("DATE", "DURATION", "SOURCE", "NOTE")
	for _, e := range planner.SortedEntries(resolver.Merged()) {
		source := planner.SourcePlan
		if date, err := utils.ParseKey(e.Day); err == nil {
			source = resolver.Lookup(date).Source
		}
		table.AddRow(e.Day, fmt.Sprintf("%d min", e.Duration), source, e.Note)
	}
	fmt.Fprintln(w, table)

	if n := len(ctx.Tracker.ParseErrors); n > 0 {
		cli.Warn(w, "Stored plan has %d invalid line(s) that were skipped.", n)
	}
	return nil
}

type ExportCmd struct {
	Output string `short:"o" help:"Write the CSV to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadTracker(); err != nil {
		return err
	}
	text := csvplan.Serialize(ctx.Tracker.EffectivePlan())

	if c.Output == "" {
		_, err := fmt.Fprint(ctx.Stdout(), text)
		return err
	}

	path, err := homedir.Expand(c.Output)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	cli.Success(ctx.Stdout(), "Plan exported to %s", path)
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	w := ctx.Stdout()
	if !c.Yes {
		fmt.Fprint(w, "This removes the applied plan and every manual day edit. Completions are kept.\nContinue? [y/N]: ")
		response, err := bufio.NewReader(ctx.Stdin()).ReadString('\n')
		if err != nil && response == "" {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(w, "Reset cancelled.")
			return nil
		}
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.LoadTracker(); err != nil {
		return err
	}
	if err := ctx.Tracker.ResetPlan(); err != nil {
		return err
	}
	cli.Success(w, "Plan reset")
	return nil
}
