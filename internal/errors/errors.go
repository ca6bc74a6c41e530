// Package errors renders fatal command errors for the terminal.
package errors

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/meditrack/internal/keyring"
	"github.com/julianstephens/meditrack/internal/lock"
	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/internal/migration"
	"github.com/julianstephens/meditrack/internal/storage/postgres"
)

// hints are printed under the message when the error wraps target.
var hints = []struct {
	target error
	hint   string
}{
	{lock.ErrLocked, "Close the other session (the TUI or 'plan watch') and try again."},
	{keyring.ErrNotFound, "Store a connection string with 'meditrack keyring set' or pass --store."},
	{keyring.ErrKeyringUnavailable, "Pass the connection string with --store and keep the password in ~/.pgpass."},
	{postgres.ErrEmbeddedCredentials, "Keep the password in the OS keyring ('meditrack keyring set') or ~/.pgpass."},
	{migration.ErrSchemaNewer, "This database was written by a newer meditrack. Upgrade to open it."},
}

// Format renders err as "Error: ..." followed by a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	for _, h := range hints {
		if goerrors.Is(err, h.target) {
			msg += "\n" + h.hint
			break
		}
	}
	return msg
}

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}
