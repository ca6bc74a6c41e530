package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when the backing storage does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'meditrack init' first")
	// ErrNotLoaded is returned when a value is read or written before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Gateway is an opaque string key-value store. The tracker only ever stores
// raw plan text and JSON documents in it.
type Gateway interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Utils
	GetConfigPath() string
}
