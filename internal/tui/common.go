package tui

import (
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Color palette, driven by the active theme. ApplyPalette swaps it.
var (
	// ColorAccent for selection, active tab and highlights
	ColorAccent lipgloss.Color

	// ColorInk for primary text
	ColorInk lipgloss.Color

	// ColorDim for secondary text and help
	ColorDim lipgloss.Color

	// ColorPanel for tab and dialog backgrounds
	ColorPanel lipgloss.Color

	// ColorBorder for shelf and dialog borders
	ColorBorder lipgloss.Color

	// ColorDanger for destructive confirmations and errors
	ColorDanger = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles, rebuilt by ApplyPalette.
var (
	// StyleNormal is the base style for regular text
	StyleNormal lipgloss.Style

	// StyleHighlight is for selected items
	StyleHighlight lipgloss.Style

	// StyleTag is for note tags
	StyleTag lipgloss.Style

	// StyleHelp is for help text and hints
	StyleHelp lipgloss.Style

	// StyleHeader is for section headers
	StyleHeader lipgloss.Style

	// StyleBorder is for borders and separators
	StyleBorder lipgloss.Style

	// StyleActiveBorder marks the shelf holding the selection
	StyleActiveBorder lipgloss.Style

	// StyleError is for inline error lines
	StyleError lipgloss.Style
)

func init() {
	ApplyPalette(theme.DefaultPalette)
}

// ApplyPalette rebuilds every shared color and style from p.
func ApplyPalette(p theme.Palette) {
	ColorAccent = p.Accent
	ColorInk = p.Ink
	ColorDim = p.InkDim
	ColorPanel = p.Bg2
	ColorBorder = p.Border

	StyleNormal = lipgloss.NewStyle().Foreground(ColorInk)
	StyleHighlight = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)
	StyleTag = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleHelp = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().
		Foreground(ColorInk).
		Bold(true)
	StyleBorder = lipgloss.NewStyle().
		Foreground(ColorDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	StyleActiveBorder = StyleBorder.BorderForeground(ColorAccent)
	StyleError = lipgloss.NewStyle().Foreground(ColorDanger)
}
