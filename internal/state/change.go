package state

import (
	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/util"
)

// Change describes what a mutation touched, keyed by entity id, so views
// can redraw only the affected pieces.
type Change struct {
	Added   []string
	Updated []string
	Removed []string

	ActiveChanged bool
	ThemeChanged  bool
	// Replaced is set when the whole tree was swapped (import); views
	// should drop everything they cached.
	Replaced bool
}

// Empty reports whether the mutation changed nothing observable.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0 &&
		!c.ActiveChanged && !c.ThemeChanged && !c.Replaced
}

// Touches reports whether id was added, updated, or removed.
func (c Change) Touches(id string) bool {
	for _, set := range [][]string{c.Added, c.Updated, c.Removed} {
		for _, v := range set {
			if v == id {
				return true
			}
		}
	}
	return false
}

type shelfPrint struct {
	Name      string
	Collapsed bool
	Gradient  library.Gradient
	Books     []string
}

type bookshelfPrint struct {
	Name    string
	Shelves []string
}

// fingerprints maps every entity id to a hash of the fields that affect
// how it is drawn. Containers hash their child order, not the children.
func fingerprints(s *library.AppState) map[string]string {
	out := make(map[string]string)
	for _, bs := range s.Bookshelves {
		bp := bookshelfPrint{Name: bs.Name}
		for _, sh := range bs.Shelves {
			bp.Shelves = append(bp.Shelves, sh.ID)
			sp := shelfPrint{Name: sh.Name, Collapsed: sh.Collapsed, Gradient: sh.AddGradient}
			for _, bk := range sh.Books {
				sp.Books = append(sp.Books, bk.ID)
				out[bk.ID] = util.Fingerprint(bk)
			}
			out[sh.ID] = util.Fingerprint(sp)
		}
		out[bs.ID] = util.Fingerprint(bp)
	}
	return out
}

func diff(before, after map[string]string) Change {
	var c Change
	for id, fp := range after {
		old, ok := before[id]
		switch {
		case !ok:
			c.Added = append(c.Added, id)
		case old != fp:
			c.Updated = append(c.Updated, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			c.Removed = append(c.Removed, id)
		}
	}
	return c
}
