package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/google/go-cmp/cmp"
)

var sampleJSON = []byte(`{
  "bookshelves": [
    {
      "id": "bs-work",
      "name": "Work",
      "shelves": [
        {
          "id": "sh-ideas",
          "name": "Ideas",
          "collapsed": false,
          "addGradient": ["#0057bd", "#e35a00"],
          "books": [
            {"id": "bk-go", "title": "Go notes", "content": "channels and goroutines", "tags": ["golang"], "gradient": ["#14b23a", "#ac117e"]},
            {"id": "bk-db", "title": "Databases", "content": "bbolt is a golang kv store", "tags": ["storage"], "gradient": ["#ff2c0a", "#507bff"]}
          ]
        }
      ]
    },
    {
      "id": "bs-home",
      "name": "Home",
      "shelves": []
    }
  ],
  "active": 1,
  "activeTheme": "Soft Material"
}`)

func mustParse(t *testing.T, data []byte) *library.AppState {
	t.Helper()
	s, err := library.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

// --- Parse / Marshal round-trip ---

func TestParse_Valid(t *testing.T) {
	s := mustParse(t, sampleJSON)
	if len(s.Bookshelves) != 2 {
		t.Fatalf("expected 2 bookshelves, got %d", len(s.Bookshelves))
	}
	if s.Active != 1 {
		t.Errorf("Active = %d, want 1", s.Active)
	}
	if s.ActiveTheme != "Soft Material" {
		t.Errorf("ActiveTheme = %q, want %q", s.ActiveTheme, "Soft Material")
	}
	if got := s.Bookshelves[0].Shelves[0].Books[1].ID; got != "bk-db" {
		t.Errorf("second book ID = %q, want %q", got, "bk-db")
	}
}

func TestParse_BookshelvesNotAList(t *testing.T) {
	_, err := library.Parse([]byte(`{"bookshelves": "not an array"}`))
	if !errors.Is(err, library.ErrInvalidFormat) {
		t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
	}
}

func TestParse_MissingBookshelves(t *testing.T) {
	_, err := library.Parse([]byte(`{"active": 0}`))
	if !errors.Is(err, library.ErrInvalidFormat) {
		t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
	}
}

func TestParse_NotJSON(t *testing.T) {
	_, err := library.Parse([]byte("{{ definitely not json"))
	if !errors.Is(err, library.ErrInvalidFormat) {
		t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
	}
}

func TestParse_TopLevelArray(t *testing.T) {
	_, err := library.Parse([]byte(`[{"bookshelves": []}]`))
	if !errors.Is(err, library.ErrInvalidFormat) {
		t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
	}
}

func TestParse_MissingThemeLeftEmpty(t *testing.T) {
	s := mustParse(t, []byte(`{"bookshelves": []}`))
	if s.ActiveTheme != "" {
		t.Errorf("ActiveTheme = %q, want empty", s.ActiveTheme)
	}
	if s.Active != 0 {
		t.Errorf("Active = %d, want 0", s.Active)
	}
}

func TestParse_BackfillsOldFiles(t *testing.T) {
	s := mustParse(t, []byte(`{"bookshelves": [{"name": "Old", "shelves": [{"name": "s", "books": [{"title": "t"}]}]}]}`))
	bk := s.Bookshelves[0].Shelves[0].Books[0]
	if bk.ID == "" || s.Bookshelves[0].ID == "" || s.Bookshelves[0].Shelves[0].ID == "" {
		t.Error("missing ids were not backfilled")
	}
	if !bk.Gradient.Valid() {
		t.Errorf("book gradient not backfilled: %v", bk.Gradient)
	}
	if bk.Tags == nil {
		t.Error("nil tags not replaced with empty slice")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	s := mustParse(t, sampleJSON)
	data, err := library.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s2 := mustParse(t, data)
	if diff := cmp.Diff(s, s2); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	s := mustParse(t, sampleJSON)
	path := t.TempDir() + "/backup.json"
	if err := library.WriteFile(path, s); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := library.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("file round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_ReplacesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "backup.json")
	if err := library.WriteFile(path, library.Default()); err != nil {
		t.Fatalf("WriteFile into a missing dir: %v", err)
	}
	s := mustParse(t, sampleJSON)
	if err := library.WriteFile(path, s); err != nil {
		t.Fatalf("WriteFile over an existing file: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
	got, err := library.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bookshelves) != len(s.Bookshelves) {
		t.Errorf("bookshelves = %d, want %d", len(got.Bookshelves), len(s.Bookshelves))
	}
}

func TestMarshalYAML(t *testing.T) {
	s := mustParse(t, sampleJSON)
	data, err := library.MarshalYAML(s)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	if !strings.Contains(string(data), "name: Work") {
		t.Errorf("YAML export missing bookshelf name:\n%s", data)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := library.Decode([]byte("not json")); err == nil {
		t.Error("Decode should fail on garbage")
	}
}

// --- Operations ---

func TestCreateBookshelfShelfBook(t *testing.T) {
	s := library.Default()
	bs, err := s.AddBookshelf("X")
	if err != nil {
		t.Fatalf("AddBookshelf: %v", err)
	}
	sh, err := s.AddShelf(s.Active, "Y")
	if err != nil {
		t.Fatalf("AddShelf: %v", err)
	}
	bk, err := s.AddBook(s.Active, 0, "Z")
	if err != nil {
		t.Fatalf("AddBook: %v", err)
	}

	if len(s.Bookshelves) != 1 || len(s.Bookshelves[0].Shelves) != 1 || len(s.Bookshelves[0].Shelves[0].Books) != 1 {
		t.Fatalf("unexpected tree shape: %+v", s)
	}
	ids := map[string]bool{bs.ID: true, sh.ID: true, bk.ID: true}
	if len(ids) != 3 {
		t.Errorf("ids are not unique: %q %q %q", bs.ID, sh.ID, bk.ID)
	}
	for id := range ids {
		if id == "" {
			t.Error("generated id is empty")
		}
	}
	if got := s.Bookshelves[0].Shelves[0].Books[0].Title; got != "Z" {
		t.Errorf("book title = %q, want %q", got, "Z")
	}
}

func TestAddBookshelf_MakesActive(t *testing.T) {
	s := library.Default()
	_, _ = s.AddBookshelf("one")
	_, _ = s.AddBookshelf("two")
	if s.Active != 1 {
		t.Errorf("Active = %d, want 1", s.Active)
	}
}

func TestAdd_EmptyNameRejected(t *testing.T) {
	s := library.Default()
	if _, err := s.AddBookshelf("   "); !errors.Is(err, library.ErrEmptyName) {
		t.Errorf("AddBookshelf blank = %v, want ErrEmptyName", err)
	}
	_, _ = s.AddBookshelf("ok")
	if _, err := s.AddShelf(0, ""); !errors.Is(err, library.ErrEmptyName) {
		t.Errorf("AddShelf blank = %v, want ErrEmptyName", err)
	}
}

func TestAddShelf_OutOfRange(t *testing.T) {
	s := library.Default()
	if _, err := s.AddShelf(3, "nope"); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("AddShelf out of range = %v, want ErrNotFound", err)
	}
}

func TestDeleteBookshelf_ClampsActive(t *testing.T) {
	cases := []struct {
		name        string
		count       int
		active      int
		del         int
		wantActive  int
		wantShelves int
	}{
		{"delete only", 1, 0, 0, 0, 0},
		{"delete last active", 3, 2, 2, 1, 2},
		{"delete middle active", 3, 1, 1, 0, 2},
		{"delete first active", 3, 0, 0, 0, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := library.Default()
			for i := 0; i < c.count; i++ {
				_, _ = s.AddBookshelf("bs")
			}
			s.Active = c.active
			if err := s.DeleteBookshelf(c.del); err != nil {
				t.Fatalf("DeleteBookshelf: %v", err)
			}
			if s.Active != c.wantActive {
				t.Errorf("Active = %d, want %d", s.Active, c.wantActive)
			}
			if s.Active < 0 {
				t.Error("Active went negative")
			}
			if len(s.Bookshelves) != c.wantShelves {
				t.Errorf("len = %d, want %d", len(s.Bookshelves), c.wantShelves)
			}
		})
	}
}

func TestToggleShelf(t *testing.T) {
	s := library.Default()
	_, _ = s.AddBookshelf("bs")
	_, _ = s.AddShelf(0, "sh")
	_ = s.ToggleShelf(0, 0)
	if !s.Bookshelves[0].Shelves[0].Collapsed {
		t.Error("shelf should be collapsed after toggle")
	}
	_ = s.ToggleShelf(0, 0)
	if s.Bookshelves[0].Shelves[0].Collapsed {
		t.Error("shelf should be expanded after second toggle")
	}
}

func TestDeleteBook(t *testing.T) {
	s := mustParse(t, sampleJSON)
	if err := s.DeleteBook(0, 0, 0); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	books := s.Bookshelves[0].Shelves[0].Books
	if len(books) != 1 || books[0].ID != "bk-db" {
		t.Errorf("remaining books = %+v", books)
	}
	if err := s.DeleteBook(0, 0, 5); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("DeleteBook out of range = %v, want ErrNotFound", err)
	}
}

func TestTags_AddRemove(t *testing.T) {
	b := library.Book{Tags: []string{}}
	if !b.AddTag("  GoLang ") {
		t.Error("AddTag returned false for new tag")
	}
	if b.AddTag("golang") {
		t.Error("AddTag accepted a duplicate")
	}
	if b.AddTag("   ") {
		t.Error("AddTag accepted a blank tag")
	}
	if len(b.Tags) != 1 || b.Tags[0] != "golang" {
		t.Errorf("Tags = %v, want [golang]", b.Tags)
	}
	if !b.RemoveTag("GOLANG") {
		t.Error("RemoveTag returned false for present tag")
	}
	if len(b.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", b.Tags)
	}
}

func TestFindBook(t *testing.T) {
	s := mustParse(t, sampleJSON)
	p, bk, err := s.FindBook("bk-db")
	if err != nil {
		t.Fatalf("FindBook: %v", err)
	}
	if p != (library.Path{Bookshelf: 0, Shelf: 0, Book: 1}) || bk.Title != "Databases" {
		t.Errorf("FindBook = %+v %q", p, bk.Title)
	}
	if _, _, err := s.FindBook("sh-ideas"); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("FindBook on a shelf id = %v, want ErrNotFound", err)
	}
}

func TestBookshelfIndex_ByName(t *testing.T) {
	s := mustParse(t, sampleJSON)
	i, err := s.BookshelfIndex("home")
	if err != nil || i != 1 {
		t.Errorf("BookshelfIndex(home) = %d, %v", i, err)
	}
}

func TestAllTags(t *testing.T) {
	s := mustParse(t, sampleJSON)
	if diff := cmp.Diff([]string{"golang", "storage"}, library.AllTags(s)); diff != "" {
		t.Errorf("AllTags mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_Independent(t *testing.T) {
	s := mustParse(t, sampleJSON)
	c := s.Clone()
	c.Bookshelves[0].Shelves[0].Books[0].Tags[0] = "changed"
	if s.Bookshelves[0].Shelves[0].Books[0].Tags[0] != "golang" {
		t.Error("Clone shares tag storage with the original")
	}
	if diff := cmp.Diff(s.Bookshelves[1], c.Bookshelves[1]); diff != "" {
		t.Errorf("Clone differs (-want +got):\n%s", diff)
	}
}
