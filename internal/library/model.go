package library

// DefaultTheme is the theme recorded in a fresh state.
const DefaultTheme = "Cyber Glow"

// AppState is the whole library as persisted and exported.
type AppState struct {
	Bookshelves []Bookshelf `json:"bookshelves" yaml:"bookshelves"`
	Active      int         `json:"active" yaml:"active"`
	ActiveTheme string      `json:"activeTheme,omitempty" yaml:"active_theme,omitempty"`
}

// Bookshelf is a top-level named collection of shelves.
type Bookshelf struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Shelves []Shelf `json:"shelves" yaml:"shelves"`
}

// Shelf is a named, collapsible collection of books within a bookshelf.
type Shelf struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Collapsed   bool     `json:"collapsed" yaml:"collapsed"`
	Books       []Book   `json:"books" yaml:"books"`
	AddGradient Gradient `json:"addGradient,omitempty" yaml:"add_gradient,omitempty,flow"`
}

// Book is a single note.
type Book struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Tags     []string `json:"tags" yaml:"tags,flow"`
	Gradient Gradient `json:"gradient,omitempty" yaml:"gradient,omitempty,flow"`
}

// Gradient is a pair of #rrggbb colors used to paint a tile.
type Gradient []string

// Valid reports whether g holds exactly two colors.
func (g Gradient) Valid() bool {
	return len(g) == 2 && g[0] != "" && g[1] != ""
}

// Default returns an empty state.
func Default() *AppState {
	return &AppState{
		Bookshelves: []Bookshelf{},
		Active:      0,
		ActiveTheme: DefaultTheme,
	}
}

// Current returns the active bookshelf, or nil when there is none.
func (s *AppState) Current() *Bookshelf {
	if s.Active < 0 || s.Active >= len(s.Bookshelves) {
		return nil
	}
	return &s.Bookshelves[s.Active]
}

// Clone returns a deep copy of s.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Active:      s.Active,
		ActiveTheme: s.ActiveTheme,
		Bookshelves: make([]Bookshelf, len(s.Bookshelves)),
	}
	for i, bs := range s.Bookshelves {
		nbs := Bookshelf{ID: bs.ID, Name: bs.Name, Shelves: make([]Shelf, len(bs.Shelves))}
		for j, sh := range bs.Shelves {
			nsh := Shelf{
				ID:          sh.ID,
				Name:        sh.Name,
				Collapsed:   sh.Collapsed,
				AddGradient: cloneStrings(sh.AddGradient),
				Books:       make([]Book, len(sh.Books)),
			}
			for k, bk := range sh.Books {
				nsh.Books[k] = Book{
					ID:       bk.ID,
					Title:    bk.Title,
					Content:  bk.Content,
					Tags:     cloneStrings(bk.Tags),
					Gradient: cloneStrings(bk.Gradient),
				}
			}
			nbs.Shelves[j] = nsh
		}
		out.Bookshelves[i] = nbs
	}
	return out
}

// BookCount returns the number of books across all bookshelves.
func (s *AppState) BookCount() int {
	n := 0
	for _, bs := range s.Bookshelves {
		for _, sh := range bs.Shelves {
			n += len(sh.Books)
		}
	}
	return n
}

func cloneStrings[T ~[]string](in T) T {
	if in == nil {
		return nil
	}
	out := make(T, len(in))
	copy(out, in)
	return out
}
