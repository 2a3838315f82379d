package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across views.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
	Delete key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
	}
}

// LibraryKeys are the bindings of the main library view.
type LibraryKeys struct {
	NewBookshelf    key.Binding
	NewShelf        key.Binding
	NewBook         key.Binding
	NextBookshelf   key.Binding
	PrevBookshelf   key.Binding
	Up              key.Binding
	Down            key.Binding
	Left            key.Binding
	Right           key.Binding
	Open            key.Binding
	Collapse        key.Binding
	Rename          key.Binding
	RenameBookshelf key.Binding
	Delete          key.Binding
	DeleteBookshelf key.Binding
	Search          key.Binding
	ClearSearch     key.Binding
	Tags            key.Binding
	Themes          key.Binding
	Menu            key.Binding
	Quit            key.Binding
}

// NewLibraryKeys creates the library view bindings.
func NewLibraryKeys() LibraryKeys {
	return LibraryKeys{
		NewBookshelf:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new bookshelf")),
		NewShelf:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new shelf")),
		NewBook:         key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "new book")),
		NextBookshelf:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next bookshelf")),
		PrevBookshelf:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev bookshelf")),
		Up:              key.NewBinding(key.WithKeys("up", "k")),
		Down:            key.NewBinding(key.WithKeys("down", "j")),
		Left:            key.NewBinding(key.WithKeys("left", "h")),
		Right:           key.NewBinding(key.WithKeys("right", "l")),
		Open:            key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Collapse:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
		Rename:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		RenameBookshelf: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename bookshelf")),
		Delete:          key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		DeleteBookshelf: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete bookshelf")),
		Search:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Tags:            key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		Themes:          key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "themes")),
		Menu:            key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the library footer.
func (k LibraryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NewBookshelf, k.NewShelf, k.NewBook, k.Open, k.Search, k.Menu, k.Quit}
}

// EditorKeys are the bindings of the note editor.
type EditorKeys struct {
	Save    key.Binding
	Focus   key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Preview key.Binding
}

// NewEditorKeys creates the editor bindings.
func NewEditorKeys() EditorKeys {
	return EditorKeys{
		Save:    key.NewBinding(key.WithKeys("esc", "ctrl+s"), key.WithHelp("esc", "save & close")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "note/tags")),
		Rename:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rename")),
		Delete:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "delete")),
		Preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
	}
}

// ShortHelp returns the bindings shown in the editor footer.
func (k EditorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Focus, k.Preview, k.Rename, k.Delete}
}
