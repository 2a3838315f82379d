package library

import "strings"

// Hit is one search result with enough context to locate and label it.
type Hit struct {
	Book       Book
	Path       Path
	Bookshelf  string
	Shelf      string
	MatchedTag bool
}

// Label returns "bookshelf › shelf › title".
func (h Hit) Label() string {
	return h.Bookshelf + " › " + h.Shelf + " › " + h.Book.Title
}

// Search finds books matching query, case-insensitively. Books with a tag
// containing the query come first, in tree order; books matching only by
// title or content follow. An empty query matches nothing.
func Search(s *AppState, query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var tagHits, otherHits []Hit
	walkBooks(s, func(p Path, bs *Bookshelf, sh *Shelf, bk *Book) {
		hit := Hit{Book: *bk, Path: p, Bookshelf: bs.Name, Shelf: sh.Name}
		switch {
		case tagMatches(bk, q):
			hit.MatchedTag = true
			tagHits = append(tagHits, hit)
		case strings.Contains(strings.ToLower(bk.Title), q),
			strings.Contains(strings.ToLower(bk.Content), q):
			otherHits = append(otherHits, hit)
		}
	})
	return append(tagHits, otherHits...)
}

func tagMatches(b *Book, q string) bool {
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func walkBooks(s *AppState, fn func(Path, *Bookshelf, *Shelf, *Book)) {
	for i := range s.Bookshelves {
		bs := &s.Bookshelves[i]
		for j := range bs.Shelves {
			sh := &bs.Shelves[j]
			for k := range sh.Books {
				fn(Path{i, j, k}, bs, sh, &sh.Books[k])
			}
		}
	}
}
