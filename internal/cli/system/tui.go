package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/cli/views"
	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/internal/tui"
)

var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if !isTerminal() {
		logger.Debug("Stdout is not a terminal, printing the calendar instead")
		return (&views.CalendarCmd{}).Run(ctx)
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.LoadTracker(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
