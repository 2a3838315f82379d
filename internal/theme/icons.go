package theme

import "strings"

// DefaultIcons is the glyph set every theme starts from.
var DefaultIcons = map[string]string{
	"plus":         "+",
	"trash":        "×",
	"chevronDown":  "▾",
	"chevronRight": "▸",
	"menu":         "≡",
	"save":         "↓",
	"load":         "↑",
	"themes":       "◐",
	"tags":         "#",
	"update":       "↻",
	"search":       "/",
}

// Icons merges the theme's non-empty icon overrides into the default set.
// Markup overrides (SVG) cannot be drawn in a terminal and are skipped.
func Icons(t Theme) map[string]string {
	out := make(map[string]string, len(DefaultIcons))
	for k, v := range DefaultIcons {
		out[k] = v
	}
	for k, v := range t.Styles[CategoryIcons] {
		v = strings.TrimSpace(v)
		if v == "" || strings.HasPrefix(v, "<") {
			continue
		}
		out[k] = v
	}
	return out
}
