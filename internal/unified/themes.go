package unified

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/blackwell-systems/aethernote/internal/tui/delegate"
	"github.com/blackwell-systems/aethernote/internal/tui/picker"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type themeItem struct {
	theme  theme.Theme
	active bool
	user   bool
}

func (t themeItem) FilterValue() string { return t.theme.Name }

type themeKeys struct {
	tui.StandardKeys
	Import key.Binding
}

// ThemesModel lists built-in, system and custom themes.
type ThemesModel struct {
	sess *session
	base picker.Base
	keys themeKeys
}

func NewThemesModel(sess *session, width, height int) ThemesModel {
	keys := themeKeys{
		StandardKeys: tui.NewStandardKeys(),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
	}
	keys.Select.SetHelp("enter", "apply")

	l := list.New(nil, delegate.NewWithLayout(renderThemeItem, 2, 0), 0, 0)
	l.Title = "Themes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	m := ThemesModel{sess: sess, keys: keys}
	m.base = picker.New(picker.Config{
		List:       l,
		BackKeys:   keys.Back,
		SelectKeys: keys.Select,
		OnSelect: func(it list.Item) tea.Cmd {
			return applyTheme(sess, it.(themeItem).theme)
		},
		OnBack: func() tea.Cmd {
			return navigate(ViewLibrary, nil)
		},
		OnKeyPress: func(msg tea.KeyMsg, it list.Item) (bool, tea.Cmd) {
			switch {
			case key.Matches(msg, keys.Import):
				return true, importTheme(sess)
			case key.Matches(msg, keys.Delete):
				t, ok := it.(themeItem)
				if !ok {
					return true, nil
				}
				return true, deleteTheme(sess, t)
			}
			return false, nil
		},
		BorderStyle: tui.StyleBorder,
		ShowBorder:  true,
		Footer: func() string {
			return tui.RenderFooterBar(tui.Shortcuts(keys.Select, keys.Import, keys.Delete, keys.Back), "")
		},
	})
	m.base.SetSize(width, height)
	m.reload()
	return m
}

// reload rebuilds the list from the registry, keeping the cursor.
func (m *ThemesModel) reload() {
	reg := m.sess.deps.Themes
	user := make(map[string]bool)
	for _, t := range reg.User() {
		user[t.Name] = true
	}
	active := m.sess.activeTheme().Name

	all := reg.All()
	items := make([]list.Item, len(all))
	for i, t := range all {
		items[i] = themeItem{theme: t, active: t.Name == active, user: user[t.Name] && !t.IsSystem}
	}
	idx := m.base.List().Index()
	m.base.SetItems(items)
	if idx < len(items) {
		m.base.List().Select(idx)
	}
}

func (m ThemesModel) Init() tea.Cmd { return nil }

func (m ThemesModel) Update(msg tea.Msg) (ThemesModel, tea.Cmd) {
	cmd := m.base.Update(msg)
	return m, cmd
}

func (m ThemesModel) View() string {
	return m.base.View()
}

// themesChangedMsg asks the themes view to re-read the registry.
type themesChangedMsg struct{}

func themesChanged() tea.Msg { return themesChangedMsg{} }

func applyTheme(sess *session, t theme.Theme) tea.Cmd {
	if err := theme.Apply(sess.deps.State, t); err != nil {
		sess.deps.Log.Error("apply theme failed", zap.String("theme", t.Name), zap.Error(err))
		return alert("Could not apply theme. Error: " + err.Error())
	}
	return themesChanged
}

func deleteTheme(sess *session, it themeItem) tea.Cmd {
	if !it.user {
		return alert(fmt.Sprintf("\"%s\" is a system theme and cannot be deleted.", it.theme.Name))
	}
	name := it.theme.Name
	return confirm(fmt.Sprintf("Delete theme \"%s\"?", name), func() tea.Cmd {
		if err := sess.deps.Themes.Delete(name); err != nil {
			return alert("Could not delete theme. Error: " + err.Error())
		}
		cmds := []tea.Cmd{themesChanged}
		// Active theme removed: fall back to the default.
		if sess.snap.ActiveTheme == name {
			cmds = append(cmds, applyTheme(sess, sess.deps.Themes.ByName("")))
		}
		return tea.Batch(cmds...)
	})
}

// importTheme asks for a theme file, confirms overwrites and applies it.
func importTheme(sess *session) tea.Cmd {
	return prompt("Import Theme", "Path to theme .json", "", func(path string) tea.Cmd {
		data, err := os.ReadFile(util.ExpandHome(strings.TrimSpace(path)))
		if err != nil {
			return alert("Could not load theme. Error: " + err.Error())
		}
		t, err := theme.ParseImport(data)
		if err != nil {
			return alert("Could not load theme. Error: " + err.Error())
		}

		err = sess.deps.Themes.Import(t, nil)
		switch {
		case err == nil:
			return applyTheme(sess, t)
		case errors.Is(err, theme.ErrImportCanceled):
			msg := fmt.Sprintf("A custom theme named \"%s\" already exists. Do you want to overwrite it?", t.Name)
			return confirm(msg, func() tea.Cmd {
				if err := sess.deps.Themes.Import(t, func(string) bool { return true }); err != nil {
					return alert("Could not load theme. Error: " + err.Error())
				}
				return applyTheme(sess, t)
			})
		default:
			return alert("Could not load theme. Error: " + err.Error())
		}
	})
}

func renderThemeItem(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(themeItem)
	if !ok {
		return
	}

	var sw strings.Builder
	for _, hex := range theme.Swatches(t.theme) {
		sw.WriteString(tui.Swatch(hex))
	}

	kind := "system"
	if t.user {
		kind = "custom"
	}

	name := t.theme.Name
	if t.active {
		name += " ✓"
	}
	prefix := "  "
	title := tui.StyleNormal.Render(name)
	if index == m.Index() {
		prefix = tui.StyleHighlight.Render("› ")
		title = tui.StyleHighlight.Render(name)
	}
	_, _ = fmt.Fprintf(w, "%s%s %s\n  %s", prefix, sw.String(), title, tui.StyleHelp.Render(kind))
}
