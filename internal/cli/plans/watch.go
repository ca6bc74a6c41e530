package plans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/csvplan"
	"github.com/julianstephens/meditrack/internal/logger"
)

const defaultDebounce = 200 * time.Millisecond

type WatchCmd struct {
	File     string        `short:"f" required:"" help:"CSV plan file to watch."`
	Debounce time.Duration `default:"200ms" hidden:"" help:"Quiet period before re-applying."`

	// applied is called after every apply attempt. Tests use it to observe the loop.
	applied func(csvplan.Result, error)
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(runCtx, ctx)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *cli.Context) error {
	path, err := homedir.Expand(c.File)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read plan file: %w", err)
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.LoadTracker(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming a temp file over the original, so watch
	// the directory and filter by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := ctx.Stdout()
	fmt.Fprintf(w, "Watching %s (Ctrl+C to stop)\n", path)
	c.apply(ctx, path)

	debounce := c.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-runCtx.Done():
			fmt.Fprintln(w, "Stopped watching.")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Plan watcher error", "error", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Plan file changed", "op", evt.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			c.apply(ctx, path)
		}
	}
}

func (c *WatchCmd) apply(ctx *cli.Context, path string) {
	w := ctx.Stdout()
	var res csvplan.Result

	data, err := os.ReadFile(path)
	if err == nil {
		res, err = ctx.Tracker.ApplyPlan(string(data))
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		cli.Warn(w, "%s is gone, waiting for it to come back", filepath.Base(path))
	case err != nil:
		cli.PrintErrors(w, []string{err.Error()})
	default:
		fmt.Fprintf(w, "[%s] ", ctx.Tracker.Now().Format("15:04:05"))
		if rerr := report(ctx, res); rerr != nil {
			cli.Muted(w, "%v; fix the file to apply them", rerr)
		}
	}

	if c.applied != nil {
		c.applied(res, err)
	}
}
