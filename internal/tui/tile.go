package tui

import (
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// TileHeight is the number of lines a book tile occupies.
const TileHeight = 3

const maxBands = 6

var tileInk = lipgloss.Color("#ffffff")

// RenderTile draws a note tile: a gradient block with the title centered.
func RenderTile(title string, g library.Gradient, width int, selected bool) string {
	if width < 3 {
		width = 3
	}
	label := xansi.Truncate(title, width-2, "…")
	if selected {
		label = xansi.Truncate("› "+title, width-2, "…")
	}
	mid := lipgloss.PlaceHorizontal(width, lipgloss.Center, label)
	blank := strings.Repeat(" ", width)

	text := lipgloss.NewStyle().Foreground(tileInk).Bold(true)
	if selected {
		text = text.Underline(true)
	}
	lines := []string{
		paintBands(blank, g, width, lipgloss.NewStyle()),
		paintBands(mid, g, width, text),
		paintBands(blank, g, width, lipgloss.NewStyle()),
	}
	return strings.Join(lines, "\n")
}

// RenderAddTile draws the "add note" tile of a shelf.
func RenderAddTile(icon string, g library.Gradient, width int, selected bool) string {
	return RenderTile(icon, g, width, selected)
}

// Swatch renders a two-cell block in a solid color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// paintBands colors line in vertical bands interpolated across the gradient.
func paintBands(line string, g library.Gradient, width int, base lipgloss.Style) string {
	from, to := gradientEnds(g)
	bands := min(maxBands, width)
	var b strings.Builder
	for i := 0; i < bands; i++ {
		left := i * width / bands
		right := (i + 1) * width / bands
		t := 0.0
		if bands > 1 {
			t = float64(i) / float64(bands-1)
		}
		bg := lipgloss.Color(from.BlendRgb(to, t).Hex())
		b.WriteString(base.Background(bg).Render(xansi.Cut(line, left, right)))
	}
	return b.String()
}

func gradientEnds(g library.Gradient) (colorful.Color, colorful.Color) {
	fallback, _ := colorful.Hex("#24174d")
	if !g.Valid() {
		return fallback, fallback
	}
	from, err := colorful.Hex(g[0])
	if err != nil {
		from = fallback
	}
	to, err := colorful.Hex(g[1])
	if err != nil {
		to = from
	}
	return from, to
}
