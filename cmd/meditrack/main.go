package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/cli/backups"
	"github.com/julianstephens/meditrack/internal/cli/days"
	"github.com/julianstephens/meditrack/internal/cli/plans"
	"github.com/julianstephens/meditrack/internal/cli/system"
	"github.com/julianstephens/meditrack/internal/cli/views"
	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/errors"
	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store path or PostgreSQL connection string. A .json path uses a JSON file, a directory uses one file per key. PostgreSQL credentials must NOT be embedded; use the OS keyring or .pgpass." default:"${default_store}" env:"MEDITRACK_STORE"`
	Backend string `help:"Storage backend (sqlite, json, diskv, memory, postgres). Inferred from --store when empty." env:"MEDITRACK_BACKEND"`
	Debug   bool   `help:"Log debug output to stderr." env:"MEDITRACK_DEBUG"`

	StartDuration  int `help:"Default ramp: minutes on the first day of a month." default:"10" env:"MEDITRACK_START_DURATION"`
	TargetDuration int `help:"Default ramp: minutes once the ramp is complete." default:"60" env:"MEDITRACK_TARGET_DURATION"`
	RampDays       int `help:"Default ramp: days to go from start to target." default:"30" env:"MEDITRACK_RAMP_DAYS"`

	Init     system.InitCmd    `cmd:"" help:"Initialize meditrack storage."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Calendar views.CalendarCmd `cmd:"" help:"Print a month calendar."`
	Summary  views.SummaryCmd  `cmd:"" help:"Print month totals and the current streak."`
	Plan     struct {
		Apply  plans.ApplyCmd  `cmd:"" help:"Apply a CSV plan (date,duration,note)."`
		Show   plans.ShowCmd   `cmd:"" help:"List the effective plan."`
		Export plans.ExportCmd `cmd:"" help:"Write the effective plan as CSV."`
		Reset  plans.ResetCmd  `cmd:"" help:"Remove the plan and all manual day edits."`
		Watch  plans.WatchCmd  `cmd:"" help:"Re-apply a CSV plan file whenever it changes."`
	} `cmd:"" help:"Manage the meditation plan."`
	Day struct {
		Set    days.SetCmd    `cmd:"" help:"Set the duration and note for one day."`
		Clear  days.ClearCmd  `cmd:"" help:"Remove the manual edit for one day."`
		Toggle days.ToggleCmd `cmd:"" help:"Mark a day complete or not complete."`
	} `cmd:"" help:"Edit single days."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage sqlite backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

// Commands that must run before the store exists or without it.
var skipLoad = map[string]bool{
	"init":           true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Meditation ramp-up planner and habit calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":       constants.Version,
			"default_store": constants.DefaultStorePath,
		},
	)

	backend := cli.Backend(strings.ToLower(strings.TrimSpace(CLI.Backend)))
	if backend == "" {
		expanded, err := homedir.Expand(CLI.Store)
		if err != nil {
			expanded = CLI.Store
		}
		backend = cli.InferBackend(expanded)
	}

	target, err := cli.ResolveTarget(backend, CLI.Store)
	if err != nil {
		errors.Fatal(err)
	}

	fallbackDir, err := homedir.Expand(constants.DefaultConfigDir)
	if err != nil {
		errors.Fatal(err)
	}
	configDir := cli.DefaultConfigDir(backend, target, fallbackDir)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	ramp := models.RampConfig{
		StartDuration:  CLI.StartDuration,
		TargetDuration: CLI.TargetDuration,
		RampDays:       CLI.RampDays,
	}
	if err := validation.ValidateRampConfig(ramp); err != nil {
		errors.Fatal(err)
	}

	store, err := cli.OpenStore(backend, target)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Backend:   backend,
		Ramp:      ramp,
		ConfigDir: configDir,
	}

	command := ""
	if node := ctx.Selected(); node != nil {
		command = node.Path()
	}
	logger.Debug("Starting", "command", command, "backend", backend, "store", store.GetConfigPath())

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		var lineErrs *cli.ErrPlanLineErrors
		if goerrors.As(err, &lineErrs) {
			logger.Warn("Plan applied with skipped lines", "errors", lineErrs.Count)
			store.Close()
			os.Exit(1)
		}
		store.Close()
		errors.Fatal(err)
	}
}
