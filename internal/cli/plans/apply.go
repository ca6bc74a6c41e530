// Package plans holds the commands that apply, inspect and reset the CSV plan.
package plans

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/csvplan"
	"github.com/julianstephens/meditrack/internal/logger"
)

type ApplyCmd struct {
	File string `short:"f" required:"" help:"CSV plan file to apply, or - for stdin."`
}

func (c *ApplyCmd) Run(ctx *cli.Context) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.LoadTracker(); err != nil {
		return err
	}

	text, err := readPlanText(ctx, c.File)
	if err != nil {
		return err
	}

	res, err := ctx.Tracker.ApplyPlan(text)
	if err != nil {
		return err
	}
	return report(ctx, res)
}

// report prints the outcome of an apply. Skipped lines are printed after the
// summary and turn into ErrPlanLineErrors.
func report(ctx *cli.Context, res csvplan.Result) error {
	w := ctx.Stdout()
	if len(res.Plan) == 0 {
		if res.HasErrors() {
			cli.Warn(w, "Plan has no valid lines. Days follow the default ramp.")
		} else {
			cli.Success(w, "Plan cleared. Days follow the default ramp.")
		}
	} else {
		days := res.Plan.SortedKeys()
		cli.Success(w, "Plan applied: %d day(s) from %s to %s", len(days), days[0], days[len(days)-1])
	}

	if !res.HasErrors() {
		return nil
	}
	cli.PrintErrors(w, res.Messages())
	return &cli.ErrPlanLineErrors{Count: len(res.Errors)}
}

func readPlanText(ctx *cli.Context, file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(ctx.Stdin())
		if err != nil {
			return "", fmt.Errorf("failed to read plan from stdin: %w", err)
		}
		return string(data), nil
	}

	path, err := homedir.Expand(file)
	if err != nil {
		return "", fmt.Errorf("failed to expand path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read plan file: %w", err)
	}
	logger.Debug("Read plan file", "path", path, "bytes", len(data))
	return string(data), nil
}
