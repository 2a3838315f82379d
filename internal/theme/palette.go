package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Var is one style variable.
type Var struct {
	Name  string
	Value string
}

// Vars flattens every category except icons, sorted by name. Later
// categories win on duplicate names, in category name order.
func Vars(t Theme) []Var {
	cats := make([]string, 0, len(t.Styles))
	for cat := range t.Styles {
		if cat != CategoryIcons {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	merged := make(map[string]string)
	for _, cat := range cats {
		for k, v := range t.Styles[cat] {
			merged[k] = v
		}
	}
	out := make([]Var, 0, len(merged))
	for k, v := range merged {
		out = append(out, Var{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var (
	varName   = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)
	unsafeCSS = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "")
)

// CSS renders the theme's variables as a :root block. Variables with
// malformed names are dropped.
func CSS(t Theme) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range Vars(t) {
		if !varName.MatchString(v.Name) {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, unsafeCSS.Replace(v.Value))
	}
	b.WriteString("}\n")
	return b.String()
}

// Palette is the set of terminal colors derived from a theme.
type Palette struct {
	Bg1    lipgloss.Color
	Bg2    lipgloss.Color
	Accent lipgloss.Color
	Ink    lipgloss.Color
	InkDim lipgloss.Color
	Border lipgloss.Color
}

// DefaultPalette matches the first built-in theme.
var DefaultPalette = Palette{
	Bg1:    "#0d0221",
	Bg2:    "#24174d",
	Accent: "#00d5ff",
	Ink:    "#f0f0f0",
	InkDim: "#a0a0a0",
	Border: "#251b37",
}

// PaletteOf resolves t's color variables. Translucent colors are blended
// over --bg-1; anything unparsable keeps the default.
func PaletteOf(t Theme) Palette {
	p := DefaultPalette
	bg, ok := parseColor(t.Color("--bg-1"))
	if !ok {
		bg, _ = parseColor(string(DefaultPalette.Bg1))
	}
	set := func(dst *lipgloss.Color, key string) {
		if c, ok := parseColor(t.Color(key)); ok {
			*dst = lipgloss.Color(c.over(bg).hex())
		}
	}
	set(&p.Bg1, "--bg-1")
	set(&p.Bg2, "--bg-2")
	set(&p.Accent, "--accent")
	set(&p.Ink, "--ink")
	set(&p.InkDim, "--ink-dim")
	set(&p.Border, "--panel-border")
	return p
}

// Swatches returns the hex values of the preview colors a theme defines.
func Swatches(t Theme) []string {
	var out []string
	for _, key := range []string{"--bg-1", "--bg-2", "--accent", "--ink"} {
		if c, ok := parseColor(t.Color(key)); ok {
			out = append(out, c.hex())
		}
	}
	return out
}

// HexColor normalizes a CSS color to #rrggbb, dropping alpha.
func HexColor(v string) (string, bool) {
	c, ok := parseColor(v)
	if !ok {
		return "", false
	}
	return c.hex(), true
}

type rgba struct {
	c colorful.Color
	a float64
}

func (c rgba) hex() string {
	return c.c.Clamped().Hex()
}

// over composites c onto an opaque bg.
func (c rgba) over(bg rgba) rgba {
	if c.a >= 1 {
		return c
	}
	return rgba{c: bg.c.BlendRgb(c.c, max(c.a, 0)), a: 1}
}

var rgbFunc = regexp.MustCompile(`^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*(?:,\s*([\d.]+)\s*)?\)$`)

// parseColor understands #rgb, #rrggbb, rgb() and rgba().
func parseColor(v string) (rgba, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if strings.HasPrefix(v, "#") {
		if len(v) != 4 && len(v) != 7 {
			return rgba{}, false
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return rgba{}, false
		}
		return rgba{c: c, a: 1}, true
	}

	m := rgbFunc.FindStringSubmatch(v)
	if m == nil {
		return rgba{}, false
	}
	var ch [3]float64
	for i := range ch {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return rgba{}, false
		}
		ch[i] = f / 255
	}
	out := rgba{c: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, a: 1}
	if m[4] != "" {
		f, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return rgba{}, false
		}
		out.a = f
	}
	return out, true
}
