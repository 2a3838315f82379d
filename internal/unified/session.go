package unified

import (
	"context"
	"errors"
	"time"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Deps are the services the TUI drives.
type Deps struct {
	State    *state.Container
	Themes   *theme.Registry
	Fetcher  *theme.Fetcher
	Manifest string // system theme manifest; empty skips remote themes
	Log      *zap.Logger
}

// session is shared by every view. The state subscription marks it dirty
// on the event loop, and the orchestrator refreshes it after each update.
type session struct {
	deps       Deps
	snap       *library.AppState
	tiles      *tileCache
	icons      map[string]string
	dirty      bool
	themeDirty bool
}

func newSession(deps Deps) *session {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Fetcher == nil {
		deps.Fetcher = theme.NewFetcher(0)
	}
	s := &session{deps: deps, tiles: newTileCache()}
	s.snap = deps.State.Snapshot()
	deps.State.Subscribe(s.onChange)
	s.applyTheme()
	return s
}

func (s *session) onChange(ch state.Change) {
	if ch.Empty() {
		return
	}
	s.tiles.invalidate(ch)
	s.dirty = true
	if ch.ThemeChanged || ch.Replaced {
		s.themeDirty = true
	}
}

func (s *session) refresh() {
	if s.dirty {
		s.snap = s.deps.State.Snapshot()
		s.dirty = false
	}
	if s.themeDirty {
		s.applyTheme()
		s.themeDirty = false
	}
}

func (s *session) activeTheme() theme.Theme {
	return s.deps.Themes.ByName(s.snap.ActiveTheme)
}

func (s *session) applyTheme() {
	t := s.activeTheme()
	tui.ApplyPalette(theme.PaletteOf(t))
	s.icons = theme.Icons(t)
	s.tiles.clear()
}

// modify runs fn through the state container. A failure becomes an alert.
func (s *session) modify(fn func(*library.AppState) error) tea.Cmd {
	if err := s.deps.State.Modify(fn); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			s.deps.Log.Debug("mutation target vanished", zap.Error(err))
			return nil
		}
		s.deps.Log.Error("mutation failed", zap.Error(err))
		return alert("Could not save changes: " + err.Error())
	}
	return nil
}

// loadRemoteThemes reloads system themes off the event loop.
func (s *session) loadRemoteThemes(quiet bool) tea.Cmd {
	if s.deps.Manifest == "" {
		if quiet {
			return nil
		}
		return func() tea.Msg { return themesRefreshedMsg{quiet: quiet} }
	}
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := deps.Themes.LoadRemote(ctx, deps.Fetcher, deps.Manifest)
		return themesRefreshedMsg{err: err, quiet: quiet}
	}
}
