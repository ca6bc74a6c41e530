package storage

import (
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per key under a base directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{basePath: basePath}
}

func (s *DiskvStore) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to access store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store path %s is not a directory", s.basePath)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}

func (s *DiskvStore) Get(key string) (string, bool, error) {
	if s.d == nil {
		return "", false, ErrNotLoaded
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	v, err := s.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(v), true, nil
}

func (s *DiskvStore) Set(key, value string) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if err := s.d.WriteString(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Remove(key string) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}
