package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/meditrack/internal/keyring"
	"github.com/julianstephens/meditrack/internal/storage"
	"github.com/julianstephens/meditrack/internal/storage/postgres"
	"github.com/julianstephens/meditrack/internal/storage/sqlite"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSON     Backend = "json"
	BackendDiskv    Backend = "diskv"
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

// InferBackend picks a backend from the shape of target.
func InferBackend(target string) Backend {
	switch {
	case postgres.IsConnString(target):
		return BackendPostgres
	case target == string(BackendMemory):
		return BackendMemory
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return BackendJSON
	case strings.HasSuffix(target, "/") || strings.HasSuffix(target, string(os.PathSeparator)):
		return BackendDiskv
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return BackendDiskv
	}
	return BackendSQLite
}

// ResolveTarget expands ~ in file targets. A postgres target that is empty or
// still the default file path is read from the OS keyring.
func ResolveTarget(backend Backend, target string) (string, error) {
	if backend == BackendPostgres {
		if strings.TrimSpace(target) != "" && !strings.HasPrefix(target, "~") {
			return target, nil
		}
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", errors.New("no PostgreSQL connection string given and none stored in keyring; use 'meditrack keyring set'")
			}
			return "", err
		}
		return connStr, nil
	}
	if backend == BackendMemory {
		return target, nil
	}

	expanded, err := homedir.Expand(target)
	if err != nil {
		return "", fmt.Errorf("failed to expand store path: %w", err)
	}
	return expanded, nil
}

// OpenStore builds the gateway for backend. It does not call Init or Load.
func OpenStore(backend Backend, target string) (storage.Gateway, error) {
	switch backend {
	case BackendSQLite:
		return sqlite.NewStore(target), nil
	case BackendJSON:
		return storage.NewJSONStore(target), nil
	case BackendDiskv:
		return storage.NewDiskvStore(target), nil
	case BackendMemory:
		return storage.NewMemoryStore(), nil
	case BackendPostgres:
		if _, err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && storedInKeyring(target) {
				return postgres.New(target), nil
			}
			return nil, err
		}
		return postgres.New(target), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// storedInKeyring reports whether connStr is the one kept in the keyring,
// where an embedded password is acceptable.
func storedInKeyring(connStr string) bool {
	stored, err := keyring.GetConnectionString()
	return err == nil && stored == connStr
}
