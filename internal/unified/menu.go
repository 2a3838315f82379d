package unified

import (
	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/blackwell-systems/aethernote/internal/tui/delegate"
	"github.com/blackwell-systems/aethernote/internal/tui/picker"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// DefaultExportFile is offered as the export target.
const DefaultExportFile = "aethernote-backup.json"

// MenuModel is the side menu: save, load, themes, tags and update.
type MenuModel struct {
	sess *session
	base picker.Base
}

func NewMenuModel(sess *session, width, height int) MenuModel {
	keys := tui.NewStandardKeys()

	menu := tui.MenuItems(sess.icons)
	items := make([]list.Item, len(menu))
	for i, it := range menu {
		items[i] = it
	}

	l := list.New(items, delegate.New(tui.RenderMenuItem), 0, 0)
	l.Title = "aethernote"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	m := MenuModel{sess: sess}
	m.base = picker.New(picker.Config{
		List:       l,
		BackKeys:   keys.Back,
		SelectKeys: keys.Select,
		OnSelect: func(it list.Item) tea.Cmd {
			return menuAction(sess, it.(tui.MenuItem).Key)
		},
		OnBack: func() tea.Cmd {
			return navigate(ViewLibrary, nil)
		},
		BorderStyle: tui.StyleBorder,
		ShowBorder:  true,
		Footer: func() string {
			return tui.RenderFooterBar(tui.Shortcuts(keys.Select, keys.Back), "")
		},
	})
	m.base.SetSize(width, height)
	return m
}

func menuAction(sess *session, action string) tea.Cmd {
	switch action {
	case "export":
		return exportLibrary(sess)
	case "import":
		return importLibrary(sess)
	case "themes":
		return navigate(ViewThemes, nil)
	case "tags":
		return navigate(ViewTags, nil)
	case "refresh-themes":
		return tea.Batch(navigate(ViewLibrary, nil), sess.loadRemoteThemes(false))
	case "quit":
		return func() tea.Msg { return QuitAppMsg{} }
	}
	return nil
}

func exportLibrary(sess *session) tea.Cmd {
	return prompt("Save Library", "File path", DefaultExportFile, func(path string) tea.Cmd {
		path = util.ExpandHome(path)
		if err := library.WriteFile(path, sess.deps.State.Snapshot()); err != nil {
			sess.deps.Log.Error("export failed", zap.String("path", path), zap.Error(err))
			return alert("Could not save file. Error: " + err.Error())
		}
		sess.deps.Log.Info("exported library", zap.String("path", path))
		return alert("Saved to " + path)
	})
}

func importLibrary(sess *session) tea.Cmd {
	return prompt("Load Library", "File path", DefaultExportFile, func(path string) tea.Cmd {
		path = util.ExpandHome(path)
		s, err := library.ReadFile(path)
		if err != nil {
			sess.deps.Log.Warn("import failed", zap.String("path", path), zap.Error(err))
			return alert("Could not load file. It might be corrupted or in the wrong format.")
		}
		if err := sess.deps.State.Replace(s); err != nil {
			sess.deps.Log.Error("replace failed", zap.Error(err))
			return alert("Could not save changes: " + err.Error())
		}
		return navigate(ViewLibrary, nil)
	})
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	cmd := m.base.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return m.base.View()
}
