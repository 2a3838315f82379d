package tui_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderTile_Size(t *testing.T) {
	g := library.Gradient{"#ff0000", "#0000ff"}
	for _, w := range []int{4, 10, 17} {
		tile := tui.RenderTile("A rather long note title", g, w, false)
		if h := lipgloss.Height(tile); h != tui.TileHeight {
			t.Errorf("width %d: height = %d, want %d", w, h, tui.TileHeight)
		}
		if got := lipgloss.Width(tile); got != w {
			t.Errorf("width %d: rendered width = %d", w, got)
		}
	}
}

func TestRenderTile_TruncatesTitle(t *testing.T) {
	tile := tui.RenderTile("Quarterly planning notes", library.Gradient{"#111111", "#222222"}, 10, false)
	plain := xansi.Strip(tile)
	if !strings.Contains(plain, "…") {
		t.Errorf("long title not truncated: %q", plain)
	}
}

func TestRenderTile_InvalidGradient(t *testing.T) {
	tile := tui.RenderTile("x", nil, 8, true)
	if !strings.Contains(xansi.Strip(tile), "›") {
		t.Error("selected tile should carry a marker")
	}
}

func TestShortcuts(t *testing.T) {
	got := tui.Shortcuts(
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new bookshelf")),
		key.NewBinding(key.WithKeys("j")),
	)
	if len(got) != 1 || got[0].Label != "n new bookshelf" || got[0].Key != "n" {
		t.Errorf("Shortcuts = %+v", got)
	}
}
