package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/fatih/color"
)

var errAmbiguous = errors.New("ambiguous")

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// fail prints a red error line. The caller decides the exit status.
func fail(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString("✗"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-10s %s\n", color.CyanString(label+":"), value)
}

// confirmYes asks a y/N question on stdin.
func confirmYes(question string) bool {
	fmt.Printf("%s (y/N): ", question)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// bookshelfRef resolves ref, or the active bookshelf when ref is empty.
func bookshelfRef(s *library.AppState, ref string) (int, error) {
	if ref == "" {
		if s.Current() == nil {
			return -1, fmt.Errorf("no bookshelves yet: create one with 'aethernote bookshelf add <name>'")
		}
		return s.Active, nil
	}
	return s.BookshelfIndex(ref)
}

// shelfRef resolves a shelf on bookshelf bsRef (or the active one).
func shelfRef(s *library.AppState, bsRef, ref string) (int, int, error) {
	i, err := bookshelfRef(s, bsRef)
	if err != nil {
		return -1, -1, err
	}
	j, err := s.ShelfIndex(i, ref)
	if err != nil {
		return -1, -1, err
	}
	return i, j, nil
}

// bookRef resolves a note by id, unique id prefix, or unique title.
func bookRef(s *library.AppState, ref string) (library.Path, error) {
	if p, _, err := s.FindBook(ref); err == nil {
		return p, nil
	}

	var matches []library.Path
	lower := strings.ToLower(ref)
	for i, bs := range s.Bookshelves {
		for j, sh := range bs.Shelves {
			for k, bk := range sh.Books {
				if strings.EqualFold(bk.Title, ref) || (len(ref) >= 4 && strings.HasPrefix(bk.ID, lower)) {
					matches = append(matches, library.Path{Bookshelf: i, Shelf: j, Book: k})
				}
			}
		}
	}
	switch len(matches) {
	case 0:
		return library.Path{}, fmt.Errorf("note %q: %w", ref, library.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return library.Path{}, fmt.Errorf("note %q matches %d notes, use its id: %w", ref, len(matches), errAmbiguous)
}

// bookAt returns the note at p.
func bookAt(s *library.AppState, p library.Path) *library.Book {
	return &s.Bookshelves[p.Bookshelf].Shelves[p.Shelf].Books[p.Book]
}

// location renders "bookshelf › shelf" for p.
func location(s *library.AppState, p library.Path) string {
	bs := s.Bookshelves[p.Bookshelf]
	return bs.Name + " › " + bs.Shelves[p.Shelf].Name
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
