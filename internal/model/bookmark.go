package model

import "time"

// Bookmark represents a registered filesystem path with usage metadata.
// Path is always absolute and canonical; it is the record's identity.
type Bookmark struct {
	Path         string    `yaml:"path"`
	Persist      bool      `yaml:"persist,omitempty"`
	LastSelected time.Time `yaml:"last_selected"`
	Tags         []string  `yaml:"tags,omitempty"`
	AccessCount  int       `yaml:"access_count,omitempty"`
}

// HasTag reports whether the bookmark carries the exact tag.
// Comparison is case-sensitive.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
