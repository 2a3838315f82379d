package unified

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LibraryModel is the main view: bookshelf tabs, the active bookshelf's
// shelves in masonry columns, and search results when a query is set.
type LibraryModel struct {
	sess *session
	keys tui.LibraryKeys

	width, height int

	// Cursor within the active bookshelf. item is -1 for the shelf bar,
	// 0..n-1 for notes and n for the add tile.
	shelf, item int

	search    textinput.Model
	searching bool // search input has focus
	hit       int  // cursor within search results

	offset    int // first visible body line
	activeCmd string
}

// NewLibraryModel creates the library view.
func NewLibraryModel(sess *session) LibraryModel {
	in := textinput.New()
	in.Placeholder = "Search notes and tags"
	in.Prompt = "/ "
	in.CharLimit = 100
	in.Width = 28
	return LibraryModel{
		sess:   sess,
		keys:   tui.NewLibraryKeys(),
		item:   -1,
		search: in,
	}
}

func (m LibraryModel) Init() tea.Cmd { return nil }

// Query returns the trimmed search query.
func (m LibraryModel) Query() string {
	return strings.TrimSpace(m.search.Value())
}

// SetQuery fills the search box, as the tags view does.
func (m *LibraryModel) SetQuery(q string) {
	m.search.SetValue(q)
	m.search.CursorEnd()
	m.searching = false
	m.search.Blur()
	m.hit = 0
	m.offset = 0
}

func (m LibraryModel) Update(msg tea.Msg) (LibraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow()
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearchInput(msg)
		}
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		m.clamp()
		m.follow()
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LibraryModel) updateSearchInput(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.searching = false
		m.search.Blur()
		m.offset = 0
		return m, nil
	case "enter", "down", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, func() tea.Msg { return QuitAppMsg{} }
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.hit = 0
	m.offset = 0
	return m, cmd
}

func (m LibraryModel) handleKey(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	snap := m.sess.snap
	cur := snap.Current()
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, k.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, k.ClearSearch):
		if m.Query() != "" {
			m.SetQuery("")
		}
		return m, nil

	case key.Matches(msg, k.Tags):
		return m, navigate(ViewTags, nil)

	case key.Matches(msg, k.Themes):
		return m, navigate(ViewThemes, nil)

	case key.Matches(msg, k.Menu):
		return m, navigate(ViewMenu, nil)

	case key.Matches(msg, k.NewBookshelf):
		m.activeCmd = "n"
		return m, tea.Batch(tui.HighlightCmd(), m.promptNewBookshelf())

	case key.Matches(msg, k.NextBookshelf), key.Matches(msg, k.PrevBookshelf):
		n := len(snap.Bookshelves)
		if n < 2 {
			return m, nil
		}
		step := 1
		if key.Matches(msg, k.PrevBookshelf) {
			step = n - 1
		}
		next := (snap.Active + step) % n
		m.shelf, m.item, m.offset = 0, -1, 0
		return m, m.sess.modify(func(s *library.AppState) error { return s.SetActive(next) })
	}

	if m.Query() != "" {
		return m.handleResultsKey(msg)
	}
	if cur == nil {
		return m, nil
	}
	bsID := cur.ID

	switch {
	case key.Matches(msg, k.NewShelf):
		m.activeCmd = "s"
		return m, tea.Batch(tui.HighlightCmd(), prompt("New Shelf", "Shelf name", "", func(name string) tea.Cmd {
			return m.sess.modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(bsID)
				if err != nil {
					return err
				}
				_, err = s.AddShelf(i, name)
				return err
			})
		}))

	case key.Matches(msg, k.NewBook):
		n := int(msg.String()[0] - '0')
		idx := n - 1
		if n == 0 {
			idx = 9
		}
		if idx >= len(cur.Shelves) {
			return m, nil
		}
		m.activeCmd = "1-0"
		return m, tea.Batch(tui.HighlightCmd(), m.promptNewBook(bsID, cur.Shelves[idx].ID))

	case key.Matches(msg, k.RenameBookshelf):
		return m, prompt("Rename Bookshelf", "Bookshelf name", cur.Name, func(name string) tea.Cmd {
			return m.sess.modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(bsID)
				if err != nil {
					return err
				}
				return s.RenameBookshelf(i, name)
			})
		})

	case key.Matches(msg, k.DeleteBookshelf):
		return m, confirm(fmt.Sprintf("Delete bookshelf \"%s\"?", cur.Name), func() tea.Cmd {
			return m.sess.modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(bsID)
				if err != nil {
					return err
				}
				return s.DeleteBookshelf(i)
			})
		})

	case key.Matches(msg, k.Up):
		m.shelf--
	case key.Matches(msg, k.Down):
		m.shelf++
	case key.Matches(msg, k.Left):
		m.item--
	case key.Matches(msg, k.Right):
		m.item++
	}

	if m.shelf < 0 || m.shelf >= len(cur.Shelves) {
		return m, nil
	}
	sh := cur.Shelves[m.shelf]
	shID := sh.ID

	switch {
	case key.Matches(msg, k.Collapse):
		return m, m.toggleShelf(bsID, shID)

	case key.Matches(msg, k.Open):
		switch {
		case m.item < 0:
			return m, m.toggleShelf(bsID, shID)
		case m.item < len(sh.Books) && !sh.Collapsed:
			return m, navigate(ViewEditor, sh.Books[m.item].ID)
		default:
			return m, m.promptNewBook(bsID, shID)
		}

	case key.Matches(msg, k.Rename):
		if m.item < 0 {
			return m, prompt("Rename Shelf", "Shelf name", sh.Name, func(name string) tea.Cmd {
				return m.sess.modify(func(s *library.AppState) error {
					i, j, err := shelfPath(s, bsID, shID)
					if err != nil {
						return err
					}
					return s.RenameShelf(i, j, name)
				})
			})
		}
		if m.item < len(sh.Books) {
			return m, renameBook(m.sess, sh.Books[m.item])
		}

	case key.Matches(msg, k.Delete):
		if m.item < 0 {
			return m, confirm(fmt.Sprintf("Delete shelf \"%s\"?", sh.Name), func() tea.Cmd {
				return m.sess.modify(func(s *library.AppState) error {
					i, j, err := shelfPath(s, bsID, shID)
					if err != nil {
						return err
					}
					return s.DeleteShelf(i, j)
				})
			})
		}
		if m.item < len(sh.Books) {
			return m, deleteBook(m.sess, sh.Books[m.item], nil)
		}
	}
	return m, nil
}

func (m LibraryModel) handleResultsKey(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	hits := library.Search(m.sess.snap, m.Query())
	cols := m.resultColumns()
	k := m.keys

	switch {
	case key.Matches(msg, k.Left):
		m.hit--
	case key.Matches(msg, k.Right):
		m.hit++
	case key.Matches(msg, k.Up):
		m.hit -= cols
	case key.Matches(msg, k.Down):
		m.hit += cols
	case key.Matches(msg, k.Open):
		if m.hit >= 0 && m.hit < len(hits) {
			return m, navigate(ViewEditor, hits[m.hit].Book.ID)
		}
	case key.Matches(msg, k.Rename):
		if m.hit >= 0 && m.hit < len(hits) {
			return m, renameBook(m.sess, hits[m.hit].Book)
		}
	case key.Matches(msg, k.Delete):
		if m.hit >= 0 && m.hit < len(hits) {
			return m, deleteBook(m.sess, hits[m.hit].Book, nil)
		}
	}
	m.hit = max(0, min(m.hit, len(hits)-1))
	return m, nil
}

func (m LibraryModel) promptNewBookshelf() tea.Cmd {
	sess := m.sess
	return prompt("New Bookshelf", "Bookshelf name", "", func(name string) tea.Cmd {
		return sess.modify(func(s *library.AppState) error {
			_, err := s.AddBookshelf(name)
			return err
		})
	})
}

func (m LibraryModel) promptNewBook(bsID, shID string) tea.Cmd {
	sess := m.sess
	return prompt("New Book", "Book title", "", func(title string) tea.Cmd {
		return sess.modify(func(s *library.AppState) error {
			i, j, err := shelfPath(s, bsID, shID)
			if err != nil {
				return err
			}
			_, err = s.AddBook(i, j, title)
			return err
		})
	})
}

func (m LibraryModel) toggleShelf(bsID, shID string) tea.Cmd {
	return m.sess.modify(func(s *library.AppState) error {
		i, j, err := shelfPath(s, bsID, shID)
		if err != nil {
			return err
		}
		return s.ToggleShelf(i, j)
	})
}

// clamp keeps the cursor on an existing item of the active bookshelf.
func (m *LibraryModel) clamp() {
	cur := m.sess.snap.Current()
	if cur == nil || len(cur.Shelves) == 0 {
		m.shelf, m.item = 0, -1
		return
	}
	m.shelf = max(0, min(m.shelf, len(cur.Shelves)-1))
	sh := cur.Shelves[m.shelf]
	last := len(sh.Books)
	if sh.Collapsed {
		last = -1
	}
	m.item = max(-1, min(m.item, last))
}

// follow scrolls so the selection stays on screen.
func (m *LibraryModel) follow() {
	body := m.bodyHeight()
	if body <= 0 {
		return
	}
	_, top, bottom := m.renderBody()
	if bottom-top >= body {
		m.offset = top
		return
	}
	if top < m.offset {
		m.offset = top
	}
	if bottom > m.offset+body {
		m.offset = bottom - body
	}
	m.offset = max(0, m.offset)
}

// renameBook asks for a new title for b and applies it by id.
func renameBook(sess *session, b library.Book) tea.Cmd {
	id := b.ID
	return prompt("Rename Book", "New book title", b.Title, func(title string) tea.Cmd {
		return sess.modify(func(s *library.AppState) error {
			p, _, err := s.FindBook(id)
			if err != nil {
				return err
			}
			return s.RenameBook(p.Bookshelf, p.Shelf, p.Book, title)
		})
	})
}

// deleteBook confirms and removes b; after runs once it is gone.
func deleteBook(sess *session, b library.Book, after tea.Cmd) tea.Cmd {
	id := b.ID
	return confirm(fmt.Sprintf("Delete \"%s\"?", b.Title), func() tea.Cmd {
		cmd := sess.modify(func(s *library.AppState) error {
			p, _, err := s.FindBook(id)
			if err != nil {
				return err
			}
			return s.DeleteBook(p.Bookshelf, p.Shelf, p.Book)
		})
		return tea.Batch(cmd, after)
	})
}

func shelfPath(s *library.AppState, bsID, shID string) (int, int, error) {
	i, err := s.BookshelfIndex(bsID)
	if err != nil {
		return 0, 0, err
	}
	j, err := s.ShelfIndex(i, shID)
	if err != nil {
		return 0, 0, err
	}
	return i, j, nil
}
