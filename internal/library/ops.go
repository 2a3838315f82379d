package library

import (
	"fmt"
	"strings"
)

// AddBookshelf appends a bookshelf and makes it active.
func (s *AppState) AddBookshelf(name string) (*Bookshelf, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	s.Bookshelves = append(s.Bookshelves, Bookshelf{ID: NewID(), Name: name, Shelves: []Shelf{}})
	s.Active = len(s.Bookshelves) - 1
	return &s.Bookshelves[s.Active], nil
}

// Bookshelf returns the bookshelf at index i.
func (s *AppState) Bookshelf(i int) (*Bookshelf, error) {
	if i < 0 || i >= len(s.Bookshelves) {
		return nil, fmt.Errorf("bookshelf %d: %w", i, ErrNotFound)
	}
	return &s.Bookshelves[i], nil
}

// RenameBookshelf sets the name of bookshelf i.
func (s *AppState) RenameBookshelf(i int, name string) error {
	bs, err := s.Bookshelf(i)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	bs.Name = name
	return nil
}

// DeleteBookshelf removes bookshelf i. The active index moves one step
// down and is clamped into range, so it is never negative.
func (s *AppState) DeleteBookshelf(i int) error {
	if _, err := s.Bookshelf(i); err != nil {
		return err
	}
	s.Bookshelves = append(s.Bookshelves[:i], s.Bookshelves[i+1:]...)
	s.Active = max(0, s.Active-1)
	clampActive(s)
	return nil
}

// SetActive selects bookshelf i.
func (s *AppState) SetActive(i int) error {
	if _, err := s.Bookshelf(i); err != nil {
		return err
	}
	s.Active = i
	return nil
}

// Shelf returns shelf j of bookshelf i.
func (s *AppState) Shelf(i, j int) (*Shelf, error) {
	bs, err := s.Bookshelf(i)
	if err != nil {
		return nil, err
	}
	if j < 0 || j >= len(bs.Shelves) {
		return nil, fmt.Errorf("shelf %d in %q: %w", j, bs.Name, ErrNotFound)
	}
	return &bs.Shelves[j], nil
}

// AddShelf appends an expanded, empty shelf to bookshelf i.
func (s *AppState) AddShelf(i int, name string) (*Shelf, error) {
	bs, err := s.Bookshelf(i)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	bs.Shelves = append(bs.Shelves, Shelf{
		ID:          NewID(),
		Name:        name,
		Books:       []Book{},
		AddGradient: CrossBasketGradient(),
	})
	return &bs.Shelves[len(bs.Shelves)-1], nil
}

// RenameShelf sets the name of shelf j in bookshelf i.
func (s *AppState) RenameShelf(i, j int, name string) error {
	sh, err := s.Shelf(i, j)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	sh.Name = name
	return nil
}

// ToggleShelf flips the collapsed flag of shelf j in bookshelf i.
func (s *AppState) ToggleShelf(i, j int) error {
	sh, err := s.Shelf(i, j)
	if err != nil {
		return err
	}
	sh.Collapsed = !sh.Collapsed
	return nil
}

// DeleteShelf removes shelf j from bookshelf i.
func (s *AppState) DeleteShelf(i, j int) error {
	if _, err := s.Shelf(i, j); err != nil {
		return err
	}
	bs := &s.Bookshelves[i]
	bs.Shelves = append(bs.Shelves[:j], bs.Shelves[j+1:]...)
	return nil
}

// Book returns book k of shelf j in bookshelf i.
func (s *AppState) Book(i, j, k int) (*Book, error) {
	sh, err := s.Shelf(i, j)
	if err != nil {
		return nil, err
	}
	if k < 0 || k >= len(sh.Books) {
		return nil, fmt.Errorf("book %d in %q: %w", k, sh.Name, ErrNotFound)
	}
	return &sh.Books[k], nil
}

// AddBook appends an empty note to shelf j of bookshelf i.
func (s *AppState) AddBook(i, j int, title string) (*Book, error) {
	sh, err := s.Shelf(i, j)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyName
	}
	sh.Books = append(sh.Books, Book{
		ID:       NewID(),
		Title:    title,
		Tags:     []string{},
		Gradient: CrossBasketGradient(),
	})
	return &sh.Books[len(sh.Books)-1], nil
}

// RenameBook sets the title of a book.
func (s *AppState) RenameBook(i, j, k int, title string) error {
	bk, err := s.Book(i, j, k)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyName
	}
	bk.Title = title
	return nil
}

// SetContent replaces the note text of a book.
func (s *AppState) SetContent(i, j, k int, content string) error {
	bk, err := s.Book(i, j, k)
	if err != nil {
		return err
	}
	bk.Content = content
	return nil
}

// DeleteBook removes a book.
func (s *AppState) DeleteBook(i, j, k int) error {
	if _, err := s.Book(i, j, k); err != nil {
		return err
	}
	sh := &s.Bookshelves[i].Shelves[j]
	sh.Books = append(sh.Books[:k], sh.Books[k+1:]...)
	return nil
}

// AddTag adds tag to b. Tags are trimmed and lowercased; blanks and
// duplicates are ignored. It reports whether the tag was added.
func (b *Book) AddTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, t := range b.Tags {
		if t == tag {
			return false
		}
	}
	b.Tags = append(b.Tags, tag)
	return true
}

// RemoveTag deletes tag from b, reporting whether it was present.
func (b *Book) RemoveTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, t := range b.Tags {
		if t == tag {
			b.Tags = append(b.Tags[:i], b.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// Path locates an entity in the tree. Unused levels are -1.
type Path struct {
	Bookshelf int
	Shelf     int
	Book      int
}

// Find resolves id against every bookshelf, shelf, and book.
func (s *AppState) Find(id string) (Path, bool) {
	for i, bs := range s.Bookshelves {
		if bs.ID == id {
			return Path{i, -1, -1}, true
		}
		for j, sh := range bs.Shelves {
			if sh.ID == id {
				return Path{i, j, -1}, true
			}
			for k, bk := range sh.Books {
				if bk.ID == id {
					return Path{i, j, k}, true
				}
			}
		}
	}
	return Path{-1, -1, -1}, false
}

// FindBook resolves a book id.
func (s *AppState) FindBook(id string) (Path, *Book, error) {
	p, ok := s.Find(id)
	if !ok || p.Book < 0 {
		return p, nil, fmt.Errorf("book %q: %w", id, ErrNotFound)
	}
	return p, &s.Bookshelves[p.Bookshelf].Shelves[p.Shelf].Books[p.Book], nil
}

// BookshelfIndex resolves a bookshelf by id or case-insensitive name.
func (s *AppState) BookshelfIndex(ref string) (int, error) {
	for i, bs := range s.Bookshelves {
		if bs.ID == ref {
			return i, nil
		}
	}
	for i, bs := range s.Bookshelves {
		if strings.EqualFold(bs.Name, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("bookshelf %q: %w", ref, ErrNotFound)
}

// ShelfIndex resolves a shelf of bookshelf i by id or case-insensitive name.
func (s *AppState) ShelfIndex(i int, ref string) (int, error) {
	bs, err := s.Bookshelf(i)
	if err != nil {
		return -1, err
	}
	for j, sh := range bs.Shelves {
		if sh.ID == ref {
			return j, nil
		}
	}
	for j, sh := range bs.Shelves {
		if strings.EqualFold(sh.Name, ref) {
			return j, nil
		}
	}
	return -1, fmt.Errorf("shelf %q in %q: %w", ref, bs.Name, ErrNotFound)
}
