// Package system holds setup, keyring and TUI commands.
package system

import (
	"fmt"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/logger"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	logger.Info("Initialized storage", "backend", ctx.Backend, "path", ctx.Store.GetConfigPath())
	cli.Success(ctx.Stdout(), "Initialized meditrack storage at: %s", ctx.Store.GetConfigPath())
	fmt.Fprintln(ctx.Stdout(), "Apply a plan with 'meditrack plan apply --file plan.csv' or open the calendar with 'meditrack'.")
	return nil
}
