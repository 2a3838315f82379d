package theme_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#0D0221", "#0d0221", true},
		{"#fff", "#ffffff", true},
		{"rgb(255, 0, 16)", "#ff0010", true},
		{"rgba(36, 23, 77, 0.6)", "#24174d", true},
		{"  #abcdef ", "#abcdef", true},
		{"blue", "", false},
		{"#12345", "", false},
		{"rgba(1,2)", "", false},
	}
	for _, tt := range tests {
		got, ok := theme.HexColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HexColor(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPaletteOf(t *testing.T) {
	p := theme.PaletteOf(theme.Builtins()[0])
	if diff := cmp.Diff(theme.DefaultPalette, p); diff != "" {
		t.Errorf("Cyber Glow palette mismatch (-want +got):\n%s", diff)
	}

	soft := theme.PaletteOf(theme.Builtins()[1])
	if soft.Accent != lipgloss.Color("#3498db") {
		t.Errorf("Soft Material accent = %q", soft.Accent)
	}

	partial := theme.Theme{Name: "p", Styles: theme.Styles{theme.CategoryColors: {"--accent": "not a color"}}}
	if got := theme.PaletteOf(partial).Accent; got != theme.DefaultPalette.Accent {
		t.Errorf("unparsable accent = %q, want default", got)
	}
}

func TestVarsAndCSS(t *testing.T) {
	th := theme.Theme{
		Name: "t",
		Styles: theme.Styles{
			theme.CategoryColors:     {"--ink": "#fff", "--accent": "#000"},
			theme.CategoryDimensions: {"--r-sm": "4px"},
			theme.CategoryIcons:      {"plus": "*"},
		},
	}
	want := []theme.Var{
		{Name: "--accent", Value: "#000"},
		{Name: "--ink", Value: "#fff"},
		{Name: "--r-sm", Value: "4px"},
	}
	if diff := cmp.Diff(want, theme.Vars(th)); diff != "" {
		t.Errorf("Vars mismatch (-want +got):\n%s", diff)
	}

	th.Styles[theme.CategoryColors]["bad name"] = "x"
	th.Styles[theme.CategoryColors]["--evil"] = "red;}</style>"
	css := theme.CSS(th)
	if !strings.HasPrefix(css, ":root {\n  --accent: #000;\n") {
		t.Errorf("CSS = %q", css)
	}
	if strings.Contains(css, "bad name") || strings.Contains(css, "</style>") {
		t.Errorf("CSS not sanitized: %q", css)
	}
}

func TestIcons(t *testing.T) {
	th := theme.Theme{Styles: theme.Styles{theme.CategoryIcons: {
		"plus":  "✚",
		"trash": "",
		"menu":  "<svg></svg>",
	}}}
	icons := theme.Icons(th)
	if icons["plus"] != "✚" {
		t.Errorf("plus = %q, want override", icons["plus"])
	}
	if icons["trash"] != theme.DefaultIcons["trash"] {
		t.Error("empty override should keep default")
	}
	if icons["menu"] != theme.DefaultIcons["menu"] {
		t.Error("markup override should keep default")
	}
}

func TestSwatches(t *testing.T) {
	got := theme.Swatches(theme.Builtins()[0])
	want := []string{"#0d0221", "#24174d", "#00d5ff", "#f0f0f0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Swatches mismatch (-want +got):\n%s", diff)
	}
}

func TestPaletteOf_BlendsTranslucentColors(t *testing.T) {
	th := theme.Theme{Name: "glass", Styles: theme.Styles{theme.CategoryColors: {
		"--bg-1":   "#000",
		"--bg-2":   "rgba(255, 255, 255, 0.5)",
		"--accent": "rgba(0, 255, 0, 1)",
	}}}
	p := theme.PaletteOf(th)
	if p.Bg1 != "#000000" {
		t.Errorf("Bg1 = %q", p.Bg1)
	}
	if p.Bg2 != "#808080" {
		t.Errorf("Bg2 = %q, want half white over black", p.Bg2)
	}
	if p.Accent != "#00ff00" {
		t.Errorf("Accent = %q", p.Accent)
	}
}
