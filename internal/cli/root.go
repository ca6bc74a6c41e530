package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/meditrack/internal/backup"
	"github.com/julianstephens/meditrack/internal/lock"
	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/storage"
	"github.com/julianstephens/meditrack/internal/tracker"
)

type Context struct {
	Store   storage.Gateway
	Tracker *tracker.Tracker
	Backend Backend
	Ramp    models.RampConfig
	// ConfigDir holds the lock file and logs.
	ConfigDir string

	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Lock takes the single-writer session lock. Callers must Release it.
func (c *Context) Lock() (*lock.Lock, error) {
	return lock.Acquire(c.ConfigDir)
}

// LoadTracker reads persisted state into the tracker.
func (c *Context) LoadTracker() error {
	if c.Tracker == nil {
		c.Tracker = tracker.New(c.Store, c.Ramp, nil)
	}
	return c.Tracker.Load()
}

// BackupManager returns a manager for the sqlite store, or nil for other backends.
func (c *Context) BackupManager() *backup.Manager {
	if c.Backend != BackendSQLite {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// DefaultConfigDir returns the directory the store lives in, falling back to
// fallback for backends without a local path.
func DefaultConfigDir(backend Backend, target, fallback string) string {
	switch backend {
	case BackendSQLite, BackendJSON:
		return filepath.Dir(target)
	case BackendDiskv:
		return filepath.Dir(filepath.Clean(target))
	default:
		return fallback
	}
}
