// Package lock guards the store against two writers at once.
//
// The lock file holds "pid|token". A lock whose pid no longer maps to a live
// process is treated as stale and replaced.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/meditrack/internal/constants"
	"github.com/julianstephens/meditrack/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("another meditrack session is running")

type Lock struct {
	path  string
	pid   int
	token string
}

// Path returns the lock file location for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire takes the lock in configDir, replacing a stale one.
func Acquire(configDir string) (*Lock, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := Path(configDir)
	holder, err := readHolder(path)
	if err == nil {
		if holder != getpidFunc() && isAlive(holder) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
		}
		logger.Warn("Replacing stale lock", "path", path, "pid", holder)
	} else if !os.IsNotExist(err) {
		logger.Warn("Replacing unreadable lock", "path", path, "error", err)
	}

	l := &Lock{
		path:  path,
		pid:   getpidFunc(),
		token: uuid.NewString(),
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d|%s", l.pid, l.token)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}
	return l, nil
}

// Release removes the lock file if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 || parts[1] != l.token {
		logger.Warn("Lock file was taken over, leaving it in place", "path", l.path)
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

func readHolder(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lock file is malformed")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return 0, errors.New("token in lock file is empty")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lock file")
	}
	return pid, nil
}

func isAlive(pid int) bool {
	process, err := findProcessFunc(pid)
	return err == nil && process != nil
}
