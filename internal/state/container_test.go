package state_test

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/store"
	"go.uber.org/zap"
)

func newContainer(t *testing.T) (*state.Container, *store.Mem) {
	t.Helper()
	kv := store.NewMem()
	return state.New(kv, zap.NewNop()), kv
}

func TestLoad_Empty(t *testing.T) {
	c, _ := newContainer(t)
	s := c.Load()
	if len(s.Bookshelves) != 0 || s.Active != 0 {
		t.Errorf("Load on empty store = %+v, want default", s)
	}
	if s.ActiveTheme != library.DefaultTheme {
		t.Errorf("ActiveTheme = %q, want %q", s.ActiveTheme, library.DefaultTheme)
	}
}

func TestLoad_CorruptFallsBackToDefault(t *testing.T) {
	c, kv := newContainer(t)
	_ = kv.Put(store.KeyState, []byte("{not json"))
	s := c.Load()
	if len(s.Bookshelves) != 0 {
		t.Errorf("corrupt state should load as default, got %+v", s)
	}
}

func TestLoad_NormalizesAndPersists(t *testing.T) {
	c, kv := newContainer(t)
	_ = kv.Put(store.KeyState, []byte(`{"bookshelves":[{"name":"old","shelves":[]}],"active":0}`))
	s := c.Load()
	if s.Bookshelves[0].ID == "" {
		t.Fatal("bookshelf id not backfilled")
	}

	// A second container sees the same backfilled id.
	again := state.New(kv, nil).Load()
	if again.Bookshelves[0].ID != s.Bookshelves[0].ID {
		t.Errorf("backfilled id not persisted: %q vs %q", again.Bookshelves[0].ID, s.Bookshelves[0].ID)
	}
}

func TestModify_PersistsAndNotifies(t *testing.T) {
	c, kv := newContainer(t)
	c.Load()

	var changes []state.Change
	c.Subscribe(func(ch state.Change) { changes = append(changes, ch) })

	var bsID string
	err := c.Modify(func(s *library.AppState) error {
		bs, err := s.AddBookshelf("X")
		if err != nil {
			return err
		}
		bsID = bs.ID
		return nil
	})
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}

	if len(changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(changes))
	}
	if !changes[0].Touches(bsID) || len(changes[0].Added) != 1 {
		t.Errorf("change = %+v, want bookshelf %s added", changes[0], bsID)
	}

	persisted := state.New(kv, nil).Load()
	if len(persisted.Bookshelves) != 1 || persisted.Bookshelves[0].ID != bsID {
		t.Errorf("state not persisted: %+v", persisted)
	}
}

func TestModify_IncrementalChange(t *testing.T) {
	c, _ := newContainer(t)
	c.Load()

	var bookA, bookB, shelfID string
	_ = c.Modify(func(s *library.AppState) error {
		_, _ = s.AddBookshelf("bs")
		sh, _ := s.AddShelf(0, "sh")
		shelfID = sh.ID
		a, _ := s.AddBook(0, 0, "a")
		bookA = a.ID
		b, _ := s.AddBook(0, 0, "b")
		bookB = b.ID
		return nil
	})

	var got state.Change
	c.Subscribe(func(ch state.Change) { got = ch })
	_ = c.Modify(func(s *library.AppState) error {
		return s.SetContent(0, 0, 1, "new text")
	})

	if len(got.Updated) != 1 || got.Updated[0] != bookB {
		t.Errorf("Updated = %v, want only %s", got.Updated, bookB)
	}
	if got.Touches(bookA) || got.Touches(shelfID) {
		t.Errorf("untouched entities reported as changed: %+v", got)
	}

	_ = c.Modify(func(s *library.AppState) error {
		return s.DeleteBook(0, 0, 0)
	})
	if len(got.Removed) != 1 || got.Removed[0] != bookA {
		t.Errorf("Removed = %v, want %s", got.Removed, bookA)
	}
	if !got.Touches(shelfID) {
		t.Error("shelf whose book list changed should be reported")
	}
}

func TestModify_ErrorSkipsSaveAndNotify(t *testing.T) {
	c, kv := newContainer(t)
	c.Load()
	notified := false
	c.Subscribe(func(state.Change) { notified = true })

	boom := errors.New("boom")
	err := c.Modify(func(s *library.AppState) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Modify error = %v, want boom", err)
	}
	if notified {
		t.Error("subscribers notified after failed mutation")
	}
	if _, err := kv.Get(store.KeyState); !errors.Is(err, store.ErrNotFound) {
		t.Error("failed mutation was persisted")
	}
}

func TestModifyQuiet_DoesNotNotify(t *testing.T) {
	c, kv := newContainer(t)
	c.Load()
	notified := false
	c.Subscribe(func(state.Change) { notified = true })

	_ = c.ModifyQuiet(func(s *library.AppState) error {
		_, err := s.AddBookshelf("quiet")
		return err
	})
	if notified {
		t.Error("ModifyQuiet notified subscribers")
	}
	if _, err := kv.Get(store.KeyState); err != nil {
		t.Errorf("ModifyQuiet did not persist: %v", err)
	}
}

func TestModify_ActiveAndThemeFlags(t *testing.T) {
	c, _ := newContainer(t)
	c.Load()
	_ = c.Modify(func(s *library.AppState) error {
		_, _ = s.AddBookshelf("a")
		_, _ = s.AddBookshelf("b")
		return nil
	})

	var got state.Change
	c.Subscribe(func(ch state.Change) { got = ch })
	_ = c.Modify(func(s *library.AppState) error { return s.SetActive(0) })
	if !got.ActiveChanged || got.ThemeChanged {
		t.Errorf("change = %+v, want only ActiveChanged", got)
	}
	_ = c.Modify(func(s *library.AppState) error { s.ActiveTheme = "Soft Material"; return nil })
	if !got.ThemeChanged {
		t.Errorf("change = %+v, want ThemeChanged", got)
	}
}

func TestReplace(t *testing.T) {
	c, _ := newContainer(t)
	c.Load()
	_ = c.Modify(func(s *library.AppState) error { s.ActiveTheme = "Soft Material"; return nil })

	imported, err := library.Parse([]byte(`{"bookshelves":[{"id":"bs-1","name":"Imported","shelves":[]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var got state.Change
	c.Subscribe(func(ch state.Change) { got = ch })
	if err := c.Replace(imported); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !got.Replaced {
		t.Error("Replace change not flagged")
	}
	snap := c.Snapshot()
	if len(snap.Bookshelves) != 1 || snap.Bookshelves[0].ID != "bs-1" {
		t.Errorf("snapshot after Replace = %+v", snap)
	}
	if snap.ActiveTheme != "Soft Material" {
		t.Errorf("ActiveTheme = %q, want the current theme kept", snap.ActiveTheme)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	c, _ := newContainer(t)
	c.Load()
	_ = c.Modify(func(s *library.AppState) error { _, err := s.AddBookshelf("a"); return err })
	snap := c.Snapshot()
	snap.Bookshelves[0].Name = "mutated"
	if c.Snapshot().Bookshelves[0].Name != "a" {
		t.Error("Snapshot shares memory with the live state")
	}
}

func TestModify_NoOpChangeIsEmpty(t *testing.T) {
	c := state.New(store.NewMem(), zap.NewNop())
	c.Load()
	if err := c.Modify(func(s *library.AppState) error {
		_, err := s.AddBookshelf("Work")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	var got []state.Change
	c.Subscribe(func(ch state.Change) { got = append(got, ch) })
	if err := c.Modify(func(s *library.AppState) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Empty() {
		t.Errorf("no-op change = %+v, want one empty change", got)
	}

	_ = c.Modify(func(s *library.AppState) error {
		return s.RenameBookshelf(0, "Home")
	})
	if len(got) != 2 || got[1].Empty() {
		t.Errorf("rename change = %+v, want non-empty", got)
	}
}
