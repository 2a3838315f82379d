package unified

import (
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// EditorModel edits one note: its content, its tags, and (through
// dialogs) its title. Content and tags are written back on close.
type EditorModel struct {
	sess *session
	keys tui.EditorKeys

	bookID  string
	tags    []string
	missing bool

	content   textarea.Model
	tagInput  textinput.Model
	focusTags bool
	tagCursor int // -1 when no tag chip is selected

	preview  bool
	viewport viewport.Model

	width, height int
}

// NewEditorModel opens the note with the given id.
func NewEditorModel(sess *session, bookID string, width, height int) EditorModel {
	m := EditorModel{
		sess:      sess,
		keys:      tui.NewEditorKeys(),
		bookID:    bookID,
		tagCursor: -1,
	}

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	ti := textinput.New()
	ti.Placeholder = "Add a tag and press Enter..."
	ti.Prompt = "# "
	ti.CharLimit = 60

	_, b, err := sess.snap.FindBook(bookID)
	if err != nil {
		m.missing = true
	} else {
		ta.SetValue(b.Content)
		m.tags = append([]string(nil), b.Tags...)
	}
	ta.Focus()
	m.content = ta
	m.tagInput = ti
	m.viewport = viewport.New(0, 0)
	m.resize(width, height)
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditorModel) resize(width, height int) {
	m.width, m.height = width, height
	w := max(width-6, 10)
	h := max(height-12, 3)
	m.content.SetWidth(w)
	m.content.SetHeight(h)
	m.tagInput.Width = w - 4
	m.viewport.Width = w
	m.viewport.Height = h
	if m.preview {
		m.viewport.SetContent(m.renderPreview())
	}
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.missing {
			return m, navigate(ViewLibrary, nil)
		}
		switch {
		case key.Matches(msg, m.keys.Save):
			return m, m.save()

		case key.Matches(msg, m.keys.Focus):
			m.focusTags = !m.focusTags
			m.tagCursor = -1
			if m.focusTags {
				m.content.Blur()
				return m, m.tagInput.Focus()
			}
			m.tagInput.Blur()
			return m, m.content.Focus()

		case key.Matches(msg, m.keys.Preview):
			m.preview = !m.preview
			if m.preview {
				m.viewport.SetContent(m.renderPreview())
				m.viewport.GotoTop()
			}
			return m, nil

		case key.Matches(msg, m.keys.Rename):
			if b := m.book(); b != nil {
				return m, renameBook(m.sess, *b)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if b := m.book(); b != nil {
				return m, deleteBook(m.sess, *b, navigate(ViewLibrary, nil))
			}
			return m, nil
		}

		if m.preview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.focusTags {
			if handled := m.handleTagKey(msg); handled {
				return m, nil
			}
			var cmd tea.Cmd
			m.tagInput, cmd = m.tagInput.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focusTags {
		m.tagInput, cmd = m.tagInput.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// handleTagKey covers adding and removing tags from the tag row.
func (m *EditorModel) handleTagKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "enter":
		m.addPendingTag()
		return true
	case "left":
		if m.tagInput.Value() == "" && len(m.tags) > 0 {
			if m.tagCursor < 0 {
				m.tagCursor = len(m.tags) - 1
			} else {
				m.tagCursor = max(0, m.tagCursor-1)
			}
			return true
		}
	case "right":
		if m.tagCursor >= 0 {
			m.tagCursor++
			if m.tagCursor >= len(m.tags) {
				m.tagCursor = -1
			}
			return true
		}
	case "backspace", "delete":
		if m.tagInput.Value() == "" && len(m.tags) > 0 {
			i := m.tagCursor
			if i < 0 {
				i = len(m.tags) - 1
			}
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			m.tagCursor = min(m.tagCursor, len(m.tags)-1)
			return true
		}
	}
	m.tagCursor = -1
	return false
}

func (m *EditorModel) addPendingTag() {
	b := library.Book{Tags: m.tags}
	b.AddTag(m.tagInput.Value())
	m.tags = b.Tags
	m.tagInput.SetValue("")
}

// save writes content and tags (including a pending tag) and closes.
func (m EditorModel) save() tea.Cmd {
	m.addPendingTag()
	id := m.bookID
	content := m.content.Value()
	tags := append([]string{}, m.tags...)
	cmd := m.sess.modify(func(s *library.AppState) error {
		_, b, err := s.FindBook(id)
		if err != nil {
			return err
		}
		b.Content = content
		b.Tags = tags
		return nil
	})
	return tea.Batch(cmd, navigate(ViewLibrary, nil))
}

// book returns the live note from the current snapshot.
func (m EditorModel) book() *library.Book {
	_, b, err := m.sess.snap.FindBook(m.bookID)
	if err != nil {
		return nil
	}
	return b
}

func (m EditorModel) renderPreview() string {
	style := "dark"
	if c, err := colorful.Hex(string(theme.PaletteOf(m.sess.activeTheme()).Bg1)); err == nil {
		if l, _, _ := c.Lab(); l > 0.5 {
			style = "light"
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(m.viewport.Width-2, 20)),
	)
	if err != nil {
		return m.content.Value()
	}
	out, err := r.Render(m.content.Value())
	if err != nil {
		return m.content.Value()
	}
	return out
}

func (m EditorModel) View() string {
	if m.missing {
		return tui.StyleBorder.Padding(1, 2).Render(
			tui.StyleError.Render("This note no longer exists.") + "\n\n" + tui.StyleHelp.Render("press any key"))
	}

	title := ""
	where := ""
	if p, b, err := m.sess.snap.FindBook(m.bookID); err == nil {
		title = b.Title
		bs := m.sess.snap.Bookshelves[p.Bookshelf]
		where = bs.Name + " › " + bs.Shelves[p.Shelf].Name
	}

	var s strings.Builder
	s.WriteString(tui.StyleHeader.Render(xansi.Truncate(title, max(m.width-8, 10), "…")))
	s.WriteString("\n")
	s.WriteString(tui.StyleHelp.Render(where))
	s.WriteString("\n\n")

	if m.preview {
		s.WriteString(m.viewport.View())
	} else {
		s.WriteString(m.content.View())
	}
	s.WriteString("\n\n")
	s.WriteString(m.renderTags())
	s.WriteString("\n")
	s.WriteString(m.tagInput.View())
	s.WriteString("\n\n")
	s.WriteString(tui.RenderFooterBar(tui.Shortcuts(m.keys.ShortHelp()...), ""))

	return tui.StyleActiveBorder.Padding(0, 1).Render(s.String())
}

func (m EditorModel) renderTags() string {
	if len(m.tags) == 0 {
		return tui.StyleHelp.Render("no tags")
	}
	chip := lipgloss.NewStyle().
		Foreground(tui.ColorAccent).
		Background(tui.ColorPanel).
		Padding(0, 1)
	selected := chip.Reverse(true)

	chips := make([]string, len(m.tags))
	for i, t := range m.tags {
		if i == m.tagCursor {
			chips[i] = selected.Render(t + " " + m.sess.icons["trash"])
		} else {
			chips[i] = chip.Render(t)
		}
	}
	return lipgloss.NewStyle().Width(max(m.width-6, 10)).Render(strings.Join(chips, " "))
}
