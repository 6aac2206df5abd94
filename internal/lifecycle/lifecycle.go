// Package lifecycle manages how bookmarks enter, age and leave the store:
// canonicalized adds, removal of dead paths, time-based expiry and the
// selection bookkeeping. All mutations go through one Manager so the
// single-writer discipline over the backing document holds.
package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pavo/internal/model"
	"pavo/internal/storage"
)

// ErrNotRegistered reports an operation on a path the store doesn't know.
var ErrNotRegistered = errors.New("path is not registered")

// PathError reports a supplied path that does not exist or cannot be
// canonicalized. It never aborts the process; the store stays untouched.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Manager mutates the store and flushes it after every mutation.
type Manager struct {
	store   *model.Store
	storage storage.Storage
}

// NewManager creates a Manager over the given store and backend.
func NewManager(store *model.Store, st storage.Storage) *Manager {
	return &Manager{store: store, storage: st}
}

// Store returns the managed store.
func (m *Manager) Store() *model.Store {
	return m.store
}

// Add registers rawPath, defaulting to the current working directory when
// empty. The path is resolved to its absolute, symlink-free canonical
// form before it is stored; a path that does not exist or cannot be
// resolved yields a PathError and leaves the store unchanged. Adding an
// already-registered path updates the record instead of duplicating it.
func (m *Manager) Add(rawPath string, persist bool) (string, error) {
	if rawPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", &PathError{Path: rawPath, Err: err}
		}
		rawPath = cwd
	}

	abs, err := filepath.Abs(rawPath)
	if err != nil {
		return "", &PathError{Path: rawPath, Err: err}
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &PathError{Path: rawPath, Err: err}
	}

	m.store.Upsert(canonical, persist, time.Now())
	if err := m.storage.Save(m.store); err != nil {
		return canonical, err
	}
	return canonical, nil
}

// Clean removes every bookmark whose path no longer exists on the
// filesystem, unless it is persisted. Persisted-but-missing paths are
// kept unconditionally, tolerating removable media and transient mounts.
// Time-based expiry is deliberately not part of this pass. Returns the
// removed paths.
func (m *Manager) Clean() ([]string, error) {
	var removed []string
	kept := m.store.Bookmarks[:0]
	for _, b := range m.store.Bookmarks {
		if !b.Persist && !pathExists(b.Path) {
			removed = append(removed, b.Path)
			continue
		}
		kept = append(kept, b)
	}
	m.store.Bookmarks = kept

	if len(removed) == 0 {
		return nil, nil
	}
	if err := m.storage.Save(m.store); err != nil {
		return removed, err
	}
	return removed, nil
}

// AutoExpire removes every non-persisted bookmark that has gone
// unselected for longer than the store's staleness threshold. It runs
// once at interactive session start, before the first render, and only
// when the auto_clean policy is enabled. Returns the removed paths.
func (m *Manager) AutoExpire(now time.Time) ([]string, error) {
	if !m.store.AutoClean {
		return nil, nil
	}

	threshold := m.store.MaxUnselectedDuration()
	var removed []string
	kept := m.store.Bookmarks[:0]
	for _, b := range m.store.Bookmarks {
		if !b.Persist && now.Sub(b.LastSelected) > threshold {
			removed = append(removed, b.Path)
			continue
		}
		kept = append(kept, b)
	}
	m.store.Bookmarks = kept

	if len(removed) == 0 {
		return nil, nil
	}
	if err := m.storage.Save(m.store); err != nil {
		return removed, err
	}
	return removed, nil
}

// Touch records a confirmed selection: the bookmark's last_selected moves
// to now and its access_count increments by exactly one. Called once per
// selection, never on hover or preview.
func (m *Manager) Touch(path string, now time.Time) error {
	b := m.store.Get(path)
	if b == nil {
		return &PathError{Path: path, Err: ErrNotRegistered}
	}
	b.LastSelected = now
	b.AccessCount++
	return m.storage.Save(m.store)
}

// SetOptions commits a settings edit: the persist flag and the full tag
// set are written to the record atomically, then the store is flushed.
// The in-memory change is kept even when the flush fails.
func (m *Manager) SetOptions(path string, persist bool, tags []string) error {
	b := m.store.Get(path)
	if b == nil {
		return &PathError{Path: path, Err: ErrNotRegistered}
	}
	b.Persist = persist
	b.Tags = tags
	return m.storage.Save(m.store)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
