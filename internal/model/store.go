package model

import "time"

// DefaultMaxUnselectedTime is the staleness threshold applied to new
// store documents: seven days, in seconds.
const DefaultMaxUnselectedTime = 7 * 24 * 60 * 60

// Store holds all bookmarks plus the process-wide clean-up policy.
// It maps one-to-one onto the on-disk document.
type Store struct {
	AutoClean         bool       `yaml:"auto_clean"`
	MaxUnselectedTime int64      `yaml:"max_unselected_time"` // seconds
	Bookmarks         []Bookmark `yaml:"paths"`
}

// DefaultStore creates a store with the default policy and no bookmarks.
func DefaultStore() *Store {
	return &Store{
		AutoClean:         true,
		MaxUnselectedTime: DefaultMaxUnselectedTime,
		Bookmarks:         []Bookmark{},
	}
}

// MaxUnselectedDuration returns the staleness threshold as a duration.
func (s *Store) MaxUnselectedDuration() time.Duration {
	return time.Duration(s.MaxUnselectedTime) * time.Second
}

// Get finds a bookmark by exact path, returns nil if not registered.
func (s *Store) Get(path string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Path == path {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// Contains reports whether the exact path is registered.
func (s *Store) Contains(path string) bool {
	return s.Get(path) != nil
}

// Upsert inserts a bookmark for path or, when the path is already
// registered, updates its persist flag in place. Paths are unique within
// the store; usage metadata of an existing record is left untouched.
func (s *Store) Upsert(path string, persist bool, now time.Time) *Bookmark {
	if b := s.Get(path); b != nil {
		b.Persist = persist
		return b
	}
	s.Bookmarks = append(s.Bookmarks, Bookmark{
		Path:         path,
		Persist:      persist,
		LastSelected: now,
	})
	return &s.Bookmarks[len(s.Bookmarks)-1]
}

// Remove deletes the bookmark with the exact path. Returns true when a
// record was removed.
func (s *Store) Remove(path string) bool {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Path == path {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}
