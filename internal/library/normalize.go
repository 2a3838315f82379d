package library

// Normalize backfills fields that older or hand-edited states may lack:
// ids, gradients, tag slices, and an in-range active index. It reports
// whether anything was changed. Normalizing a normalized state is a no-op.
func Normalize(s *AppState) bool {
	changed := false
	if s.Bookshelves == nil {
		s.Bookshelves = []Bookshelf{}
		changed = true
	}
	for i := range s.Bookshelves {
		bs := &s.Bookshelves[i]
		if bs.ID == "" {
			bs.ID = NewID()
			changed = true
		}
		if bs.Shelves == nil {
			bs.Shelves = []Shelf{}
			changed = true
		}
		for j := range bs.Shelves {
			sh := &bs.Shelves[j]
			if sh.ID == "" {
				sh.ID = NewID()
				changed = true
			}
			if !sh.AddGradient.Valid() {
				sh.AddGradient = CrossBasketGradient()
				changed = true
			}
			if sh.Books == nil {
				sh.Books = []Book{}
				changed = true
			}
			for k := range sh.Books {
				bk := &sh.Books[k]
				if bk.ID == "" {
					bk.ID = NewID()
					changed = true
				}
				if !bk.Gradient.Valid() {
					bk.Gradient = CrossBasketGradient()
					changed = true
				}
				if bk.Tags == nil {
					bk.Tags = []string{}
					changed = true
				}
			}
		}
	}
	if s.ActiveTheme == "" {
		s.ActiveTheme = DefaultTheme
		changed = true
	}
	if clampActive(s) {
		changed = true
	}
	return changed
}

// clampActive forces Active into [0, len-1], or 0 when empty.
func clampActive(s *AppState) bool {
	old := s.Active
	switch {
	case len(s.Bookshelves) == 0:
		s.Active = 0
	case s.Active >= len(s.Bookshelves):
		s.Active = len(s.Bookshelves) - 1
	case s.Active < 0:
		s.Active = 0
	}
	return old != s.Active
}
