package unified

import (
	"fmt"

	"github.com/blackwell-systems/aethernote/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// View represents the current active view
type View string

const (
	ViewLibrary View = "library"
	ViewEditor  View = "editor"
	ViewTags    View = "tags"
	ViewThemes  View = "themes"
	ViewMenu    View = "menu"
)

type pendingDialog struct {
	dialog tui.Dialog
	then   func(tui.DialogResult) tea.Cmd
}

// Model is the unified TUI orchestrator that manages view switching
// and the modal dialog stack.
type Model struct {
	currentView View
	width       int
	height      int

	sess *session

	// View models
	library LibraryModel
	editor  EditorModel
	tags    TagsModel
	themes  ThemesModel
	menu    MenuModel

	// dialogs[0] is shown; the rest wait their turn.
	dialogs []pendingDialog
}

// New creates a new unified model starting at the library
func New(deps Deps) Model {
	sess := newSession(deps)
	return Model{
		currentView: ViewLibrary,
		sess:        sess,
		library:     NewLibraryModel(sess),
	}
}

// Run starts the full-screen program and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.library.Init(), m.sess.loadRemoteThemes(true))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	mm := model.(Model)
	mm.sess.refresh()
	return mm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sess.tiles.resize(msg.Width)
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.library, cmd = m.library.Update(msg)
		cmds = append(cmds, cmd)
		switch m.currentView {
		case ViewEditor:
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		case ViewTags, ViewThemes, ViewMenu:
			return m.updateCurrentView(msg)
		}
		return m, tea.Batch(cmds...)

	case openDialogMsg:
		m.dialogs = append(m.dialogs, pendingDialog{dialog: msg.dialog, then: msg.then})
		if len(m.dialogs) == 1 {
			return m, m.dialogs[0].dialog.Init()
		}
		return m, nil

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		return m, tea.Quit

	case themesRefreshedMsg:
		m.sess.applyTheme()
		if m.currentView == ViewThemes {
			m.themes.reload()
		}
		if msg.err != nil {
			if msg.quiet {
				return m, nil
			}
			return m, alert(fmt.Sprintf("Could not update themes. Error: %v", msg.err))
		}
		if !msg.quiet {
			return m, alert("Themes updated.")
		}
		return m, nil

	case themesChangedMsg:
		if m.currentView == ViewThemes {
			m.themes.reload()
		}
		return m, nil

	case tea.KeyMsg:
		if len(m.dialogs) > 0 {
			return m.updateDialog(msg)
		}
		return m.updateCurrentView(msg)

	default:
		if len(m.dialogs) > 0 {
			// Cursor blink and friends belong to the dialog input.
			return m.updateDialog(msg)
		}
		return m.updateCurrentView(msg)
	}
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	top := m.dialogs[0]
	d, cmd := top.dialog.Update(msg)
	if !d.Done() {
		m.dialogs[0].dialog = d
		return m, cmd
	}

	m.dialogs = m.dialogs[1:]
	cmds := []tea.Cmd{cmd}
	if top.then != nil {
		cmds = append(cmds, top.then(d.Result()))
	}
	if len(m.dialogs) > 0 {
		cmds = append(cmds, m.dialogs[0].dialog.Init())
	}
	m.sess.deps.Log.Debug("dialog closed", zap.Bool("ok", d.Result().OK))
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var view string
	switch m.currentView {
	case ViewEditor:
		view = m.editor.View()
	case ViewTags:
		view = m.tags.View()
	case ViewThemes:
		view = m.themes.View()
	case ViewMenu:
		view = m.menu.View()
	default:
		view = m.library.View()
	}

	if len(m.dialogs) > 0 && m.width > 0 {
		return tui.Overlay(m.width, m.height, m.dialogs[0].dialog.View())
	}
	if len(m.dialogs) > 0 {
		return view + "\n\n" + m.dialogs[0].dialog.View()
	}
	return view
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLibrary:
		m.library, cmd = m.library.Update(msg)
	case ViewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case ViewTags:
		m.tags, cmd = m.tags.Update(msg)
	case ViewThemes:
		m.themes, cmd = m.themes.Update(msg)
	case ViewMenu:
		m.menu, cmd = m.menu.Update(msg)
	}

	return m, cmd
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	// Views built below read the snapshot; bring it up to date first.
	m.sess.refresh()

	switch msg.Target {
	case ViewEditor:
		id, _ := msg.Data.(string)
		m.editor = NewEditorModel(m.sess, id, m.width, m.height)
		m.currentView = ViewEditor
		return m, m.editor.Init()

	case ViewTags:
		m.tags = NewTagsModel(m.sess, m.width, m.height)
		m.currentView = ViewTags
		return m, m.tags.Init()

	case ViewThemes:
		m.themes = NewThemesModel(m.sess, m.width, m.height)
		m.currentView = ViewThemes
		return m, m.themes.Init()

	case ViewMenu:
		m.menu = NewMenuModel(m.sess, m.width, m.height)
		m.currentView = ViewMenu
		return m, m.menu.Init()

	case ViewLibrary:
		if q, ok := msg.Data.(string); ok {
			m.library.SetQuery(q)
		}
		m.currentView = ViewLibrary
		return m, nil
	}

	return m, nil
}

// CurrentView reports which view has focus.
func (m Model) CurrentView() View { return m.currentView }

// DialogOpen reports whether a dialog is on screen.
func (m Model) DialogOpen() bool { return len(m.dialogs) > 0 }
