// Package project persists application data: the building set, app config,
// rate book, and templates, all as JSON under the user config directory,
// plus optional YAML rate overrides and a full-data backup format.
package project

import (
	"os"
	"path/filepath"
)

// Store is the byte-level persistence collaborator: a single fixed slot the
// building snapshots are kept under. Read returns (nil, nil) when nothing
// has been stored yet.
type Store interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Clear() error
}

// FileStore keeps the slot in one file on disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Read returns the file contents, or (nil, nil) when the file is absent.
func (s *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the slot contents, creating parent directories as needed.
func (s *FileStore) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DefaultConfigDir returns the directory application data lives in.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "massplan")
}

// DefaultBuildingsPath returns the path of the building set store.
func DefaultBuildingsPath() string {
	return filepath.Join(DefaultConfigDir(), "buildings.json")
}

// DefaultConfigPath returns the path of the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultRateBookPath returns the path of the rate book file.
func DefaultRateBookPath() string {
	return filepath.Join(DefaultConfigDir(), "ratebook.json")
}

// DefaultTemplatesPath returns the path of the building templates file.
func DefaultTemplatesPath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// DefaultRateOverridesPath returns the path of the optional YAML rate
// overrides file.
func DefaultRateOverridesPath() string {
	return filepath.Join(DefaultConfigDir(), "rates.yaml")
}
