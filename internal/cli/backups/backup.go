// Package backups holds the sqlite backup commands.
package backups

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/meditrack/internal/backup"
	"github.com/julianstephens/meditrack/internal/cli"
	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/logger"
)

var errUnsupported = errors.New("backups are only available for the sqlite backend")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil, errUnsupported
	}
	return mgr, nil
}

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	cli.Success(ctx.Stdout(), "Backup created: %s", filepath.Base(path))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	w := ctx.Stdout()
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups found.")
		fmt.Fprintf(w, "Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Fprintf(w, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	table := uitable.New()
	table.AddRow("CREATED", "FILE", "SIZE")
	for _, b := range backups {
		table.AddRow(b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), fmt.Sprintf("%.1f KB", float64(b.Size)/1024.0))
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Path or file name of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	path, err := resolveBackup(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	w := ctx.Stdout()
	if !c.Yes {
		cli.Warn(w, "This will replace your current data with the backup.")
		fmt.Fprintln(w, "A backup of your current data will be created first.")
		fmt.Fprintf(w, "\nRestore from: %s\n", path)
		fmt.Fprint(w, "Continue? [y/N]: ")

		response, err := bufio.NewReader(ctx.Stdin()).ReadString('\n')
		if err != nil && response == "" {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(w, "Restore cancelled.")
			return nil
		}
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close store before restore", "error", err)
	}

	previous, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		fmt.Fprintf(w, "Saved current data as %s\n", filepath.Base(previous))
	}
	cli.Success(w, "Restored from %s", filepath.Base(path))
	return nil
}

// resolveBackup accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func resolveBackup(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.Dir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.Dir())
}
