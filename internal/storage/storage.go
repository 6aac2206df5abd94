package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"pavo/internal/model"
)

// ConfigDirEnv overrides the directory holding the store document.
const ConfigDirEnv = "PAVO_CONFIG_DIR"

// Storage defines the interface for persisting the bookmark store.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// YAMLStorage implements Storage using a single YAML document. The
// document is read fully at startup and written fully, atomically, on
// every committed mutation.
type YAMLStorage struct {
	path string
}

// NewYAMLStorage creates a YAMLStorage backed by the given file path.
func NewYAMLStorage(path string) *YAMLStorage {
	return &YAMLStorage{path: path}
}

// Path returns the store document path.
func (s *YAMLStorage) Path() string {
	return s.path
}

// Load reads the store document. A missing file yields the default store,
// written back so the user has a document to edit. A document that cannot
// be read or parsed yields a ConfigError.
func (s *YAMLStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store := model.DefaultStore()
			// Best effort: defaults are still usable if the first
			// write fails (e.g. read-only config dir).
			_ = s.Save(store)
			return store, nil
		}
		return nil, &ConfigError{Path: s.path, Err: err}
	}

	var store model.Store
	if err := yaml.Unmarshal(data, &store); err != nil {
		return nil, &ConfigError{Path: s.path, Err: err}
	}

	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}
	now := time.Now()
	for i := range store.Bookmarks {
		if store.Bookmarks[i].Path == "" {
			return nil, &ConfigError{
				Path: s.path,
				Err:  fmt.Errorf("bookmark %d has no path", i),
			}
		}
		// Hand-added records usually omit last_selected. Treat them as
		// fresh so auto-clean does not expire them on the next session.
		if store.Bookmarks[i].LastSelected.IsZero() {
			store.Bookmarks[i].LastSelected = now
		}
	}

	return &store, nil
}

// Save writes the store document atomically: the full document goes to a
// uniquely named temp file in the same directory, then replaces the
// previous document via rename. A crash mid-write never corrupts the
// last valid state. Failures are reported as PersistenceError.
func (s *YAMLStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	data, err := yaml.Marshal(store)
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// DefaultConfigPath returns the store document location: PAVO_CONFIG_DIR
// when set, otherwise the user config directory, e.g.
// ~/.config/pavo/pavo.yml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, "pavo.yml"), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pavo", "pavo.yml"), nil
}
