package webshell_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/store"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/webshell"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newShell(t *testing.T) (webshell.Shell, *state.Container) {
	t.Helper()
	kv := store.NewMem()
	c := state.New(kv, zap.NewNop())
	c.Load()
	err := c.Modify(func(s *library.AppState) error {
		if _, err := s.AddBookshelf("Work"); err != nil {
			return err
		}
		if _, err := s.AddShelf(0, "Ideas"); err != nil {
			return err
		}
		_, err := s.AddBook(0, 0, "First")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return webshell.Shell{State: c, Themes: theme.NewRegistry(kv, zap.NewNop())}, c
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestInstall_CachesEveryAsset(t *testing.T) {
	dir := t.TempDir()
	shell, _ := newShell(t)
	w := webshell.NewWorker(dir, shell, zap.NewNop())

	if w.State() != webshell.StateInstalling {
		t.Errorf("initial state = %s", w.State())
	}
	if err := w.Install(context.Background()); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if w.State() != webshell.StateActive {
		t.Errorf("state = %s, want active", w.State())
	}
	if got := w.CacheName(); got != "aethernote-cache-v1" {
		t.Errorf("CacheName = %q", got)
	}

	c := webshell.NewCache(dir)
	for _, p := range webshell.Assets {
		if !c.Exists(w.CacheName(), p) {
			t.Errorf("%s not cached", p)
		}
	}
}

func TestInstall_ActivatePrunesOtherCaches(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"aethernote-cache-v2", "aethernote-cache-v3", "notes"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o750); err != nil {
			t.Fatal(err)
		}
	}
	shell, _ := newShell(t)
	w := webshell.NewWorker(dir, shell, nil)

	if err := w.Install(context.Background()); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if got := w.CacheName(); got != "aethernote-cache-v3" {
		t.Errorf("CacheName = %q, want newest existing", got)
	}

	if err := w.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	versions, err := webshell.NewCache(dir).Versions()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{4}, versions); diff != "" {
		t.Errorf("versions mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes")); err != nil {
		t.Errorf("unrelated directory removed: %v", err)
	}
}

func TestInstall_CanceledStaysInstalling(t *testing.T) {
	shell, _ := newShell(t)
	w := webshell.NewWorker(t.TempDir(), shell, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Install(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if w.State() != webshell.StateInstalling || w.CacheName() != "" {
		t.Errorf("state = %s, cache = %q", w.State(), w.CacheName())
	}
}

func TestServeHTTP_OriginBeforeInstall(t *testing.T) {
	dir := t.TempDir()
	shell, _ := newShell(t)
	w := webshell.NewWorker(dir, shell, nil)

	rec := get(t, w, http.MethodGet, "/library.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Aethernote-Cache") != "miss" {
		t.Error("expected origin response")
	}
	if !strings.Contains(rec.Body.String(), `"First"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if v, _ := webshell.NewCache(dir).Versions(); len(v) != 0 {
		t.Error("origin fallback populated the cache")
	}
}

func TestServeHTTP_CacheFirst(t *testing.T) {
	shell, c := newShell(t)
	w := webshell.NewWorker(t.TempDir(), shell, nil)
	if err := w.Install(context.Background()); err != nil {
		t.Fatal(err)
	}

	_ = c.Modify(func(s *library.AppState) error {
		return s.RenameBook(0, 0, 0, "Renamed")
	})

	rec := get(t, w, http.MethodGet, "/library.json")
	if rec.Header().Get("X-Aethernote-Cache") != "hit" {
		t.Error("expected cached response")
	}
	if strings.Contains(rec.Body.String(), "Renamed") {
		t.Error("cache served live data")
	}

	if err := w.Update(context.Background()); err != nil {
		t.Fatal(err)
	}
	if body := get(t, w, http.MethodGet, "/library.json").Body.String(); !strings.Contains(body, "Renamed") {
		t.Error("update did not refresh the cache")
	}
}

func TestServeHTTP_Methods(t *testing.T) {
	shell, _ := newShell(t)
	w := webshell.NewWorker(t.TempDir(), shell, nil)
	if err := w.Install(context.Background()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method, path string
		code         int
		ctype        string
	}{
		{http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8"},
		{http.MethodGet, "/icon.svg", http.StatusOK, "image/svg+xml"},
		{http.MethodGet, "/manifest.json", http.StatusOK, "application/manifest+json"},
		{http.MethodHead, "/themes.json", http.StatusOK, "application/json"},
		{http.MethodPost, "/library.json", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/secret.txt", http.StatusNotFound, ""},
		{http.MethodGet, "/../index.html", http.StatusOK, "text/html; charset=utf-8"},
	}
	for _, tt := range tests {
		rec := get(t, w, tt.method, tt.path)
		if rec.Code != tt.code {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.code)
			continue
		}
		if tt.ctype != "" && rec.Header().Get("Content-Type") != tt.ctype {
			t.Errorf("%s %s: content type = %q", tt.method, tt.path, rec.Header().Get("Content-Type"))
		}
		if tt.method == http.MethodHead && rec.Body.Len() != 0 {
			t.Errorf("HEAD returned a body")
		}
	}
}
