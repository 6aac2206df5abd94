// Package preview renders a textual preview for a bookmarked path. The
// shape of the preview depends on what the path points at: plain
// directories get a tree listing, files get a syntax highlighted excerpt
// and git repositories get a status header above their listing.
package preview

import (
	"fmt"
	"os"
	"strings"

	"pavo/internal/gitinfo"
	"pavo/internal/highlight"
)

// Kind classifies what a path points at.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindRepository
)

// GitInspector reports repository state for a directory.
type GitInspector interface {
	Detect(dir string) bool
	Inspect(dir string) (gitinfo.Info, error)
}

// Highlighter produces a highlighted excerpt of a file.
type Highlighter interface {
	Excerpt(path string, maxLines int) (string, error)
}

const (
	defaultMaxEntries = 128
	defaultMaxLines   = 200
)

// Provider builds previews. The zero value is not usable, construct it
// with NewProvider.
type Provider struct {
	Git         GitInspector
	Highlighter Highlighter

	// MaxEntries caps directory listings, MaxLines caps file excerpts.
	MaxEntries int
	MaxLines   int
}

func NewProvider() *Provider {
	return &Provider{
		Git:         gitAdapter{},
		Highlighter: highlightAdapter{},
		MaxEntries:  defaultMaxEntries,
		MaxLines:    defaultMaxLines,
	}
}

// Classify reports the preview kind for path. Missing paths classify as
// directories since that is the common case for stale bookmarks.
func (p *Provider) Classify(path string) Kind {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil && p.Git.Detect(path) {
			return KindRepository
		}
		return KindDirectory
	}
	return KindFile
}

// For renders the preview for path. It never fails: unreadable or
// missing paths degrade to a short notice instead of an error.
func (p *Provider) For(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "Path does not exist"
		}
		return "Cannot access path: " + err.Error()
	}

	if !info.IsDir() {
		return p.filePreview(path)
	}
	if p.Git.Detect(path) {
		return p.repositoryPreview(path)
	}
	return p.directoryPreview(path)
}

func (p *Provider) filePreview(path string) string {
	excerpt, err := p.Highlighter.Excerpt(path, p.MaxLines)
	if err != nil {
		if err == highlight.ErrBinary {
			return "Binary file"
		}
		return "Cannot read file: " + err.Error()
	}
	return excerpt
}

func (p *Provider) directoryPreview(path string) string {
	listing, err := p.listing(path)
	if err != nil {
		return "Cannot read directory: " + err.Error()
	}
	if listing == "" {
		return "Empty directory"
	}
	return listing
}

func (p *Provider) repositoryPreview(path string) string {
	info, err := p.Git.Inspect(path)
	if err != nil {
		// Broken repositories still get a plain listing.
		return p.directoryPreview(path)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Branch: %s\n", info.Branch)
	if info.CommitHash != "" {
		hash := info.CommitHash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(&b, "Commit: %s %s\n", hash, info.CommitSubject)
		fmt.Fprintf(&b, "Author: %s\n", info.CommitAuthor)
	}
	if info.Clean() {
		b.WriteString("Status: clean\n")
	} else {
		fmt.Fprintf(&b, "Status: %d staged, %d unstaged, %d untracked\n",
			info.Staged, info.Unstaged, info.Untracked)
	}

	listing, err := p.listing(path)
	if err == nil && listing != "" {
		b.WriteString("\n")
		b.WriteString(listing)
	}
	return b.String()
}

// listing renders a flat tree of the directory's visible entries.
// Dotfiles are skipped and the listing is cut at MaxEntries.
func (p *Provider) listing(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}

	visible := entries[:0]
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		visible = append(visible, e)
	}

	truncated := false
	if len(visible) > p.MaxEntries {
		visible = visible[:p.MaxEntries]
		truncated = true
	}

	var b strings.Builder
	for i, e := range visible {
		connector := "├── "
		if i == len(visible)-1 && !truncated {
			connector = "└── "
		}
		b.WriteString(connector)
		b.WriteString(e.Name())
		if e.IsDir() {
			b.WriteString("/")
		}
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString("└── ...\n")
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

type gitAdapter struct{}

func (gitAdapter) Detect(dir string) bool                   { return gitinfo.Detect(dir) }
func (gitAdapter) Inspect(dir string) (gitinfo.Info, error) { return gitinfo.Inspect(dir) }

type highlightAdapter struct{}

func (highlightAdapter) Excerpt(path string, maxLines int) (string, error) {
	return highlight.Excerpt(path, maxLines)
}
