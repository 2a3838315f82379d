package library

import (
	"sort"
	"strings"
)

// AllTags returns every tag in the library, sorted and deduplicated.
func AllTags(s *AppState) []string {
	counts := TagCounts(s)
	out := make([]string, 0, len(counts))
	for t := range counts {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TagCounts maps each lowercased tag to the number of books carrying it.
func TagCounts(s *AppState) map[string]int {
	counts := make(map[string]int)
	walkBooks(s, func(_ Path, _ *Bookshelf, _ *Shelf, bk *Book) {
		for _, t := range bk.Tags {
			counts[strings.ToLower(t)]++
		}
	})
	return counts
}
