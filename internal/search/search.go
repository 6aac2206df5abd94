// Package search filters bookmarks with case-insensitive fuzzy matching
// and orders the results by usage.
package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"pavo/internal/model"
)

// Result is a bookmark that survived filtering. MatchedIndexes holds the
// rune positions of the query match within the path, empty when the
// query was empty.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
}

type candidates []*model.Bookmark

func (c candidates) String(i int) string { return c[i].Path }
func (c candidates) Len() int            { return len(c) }

// Filter narrows the store down to bookmarks matching query and tag and
// returns them most-used first. The tag filter is an exact,
// case-sensitive membership test applied before the fuzzy match. The
// fuzzy match only gates inclusion, it never influences ordering:
// results sort by access count and recency alone.
func Filter(store *model.Store, query, tag string) []Result {
	var pool candidates
	for i := range store.Bookmarks {
		b := &store.Bookmarks[i]
		if tag != "" && !b.HasTag(tag) {
			continue
		}
		pool = append(pool, b)
	}

	var results []Result
	if query == "" {
		for _, b := range pool {
			results = append(results, Result{Bookmark: b})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, pool) {
			results = append(results, Result{
				Bookmark:       pool[m.Index],
				MatchedIndexes: m.MatchedIndexes,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Bookmark, results[j].Bookmark
		if a.AccessCount != b.AccessCount {
			return a.AccessCount > b.AccessCount
		}
		return a.LastSelected.After(b.LastSelected)
	})
	return results
}
