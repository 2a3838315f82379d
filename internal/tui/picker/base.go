// Package picker wraps a bubbles list with the select/back handling shared
// by the menu, tags and themes views.
package picker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectHandler is called when an item is selected.
type SelectHandler func(selectedItem list.Item) tea.Cmd

// KeyHandler is called for custom key handling.
// Return true if the key was handled, false to pass through to default handling.
type KeyHandler func(msg tea.KeyMsg, selectedItem list.Item) (handled bool, cmd tea.Cmd)

// Config configures a base picker.
type Config struct {
	// List is the underlying bubbles list.Model
	List list.Model

	// Keys are the key bindings (required)
	BackKeys   key.Binding
	SelectKeys key.Binding

	// Handlers
	OnSelect   SelectHandler // Called when SelectKeys is pressed
	OnBack     func() tea.Cmd
	OnKeyPress KeyHandler // Optional: custom key handling

	// Styling
	BorderStyle lipgloss.Style
	ShowBorder  bool
	Footer      func() string
}

// Base provides common picker functionality.
// Embed this in view models to reduce boilerplate.
type Base struct {
	config Config
	list   list.Model
}

// New creates a new base picker.
func New(cfg Config) Base {
	return Base{
		config: cfg,
		list:   cfg.List,
	}
}

// List returns the underlying list model for direct access.
func (b *Base) List() *list.Model {
	return &b.list
}

// Update handles standard picker updates.
func (b *Base) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't handle keys when filtering
		if b.list.FilterState() == list.Filtering {
			break
		}

		if b.config.OnKeyPress != nil {
			if handled, cmd := b.config.OnKeyPress(msg, b.list.SelectedItem()); handled {
				return cmd
			}
		}

		switch {
		case key.Matches(msg, b.config.BackKeys):
			if b.list.FilterState() == list.FilterApplied {
				b.list.ResetFilter()
				return nil
			}
			if b.config.OnBack != nil {
				return b.config.OnBack()
			}
			return nil

		case key.Matches(msg, b.config.SelectKeys):
			if b.config.OnSelect != nil {
				if selected := b.list.SelectedItem(); selected != nil {
					return b.config.OnSelect(selected)
				}
			}
			return nil
		}

	case tea.WindowSizeMsg:
		b.SetSize(msg.Width, msg.Height)
		return nil
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return cmd
}

// SetSize fits the list into width×height, leaving room for the border
// and footer.
func (b *Base) SetSize(width, height int) {
	if b.config.ShowBorder {
		h, v := b.config.BorderStyle.GetFrameSize()
		width -= h
		height -= v
	}
	if b.config.Footer != nil {
		height--
	}
	b.list.SetSize(max(width, 0), max(height, 0))
}

// View renders the picker.
func (b *Base) View() string {
	view := b.list.View()
	if b.config.Footer != nil {
		view += "\n" + b.config.Footer()
	}
	if b.config.ShowBorder {
		return b.config.BorderStyle.Render(view)
	}
	return view
}

// SelectedItem returns the currently selected item.
func (b *Base) SelectedItem() list.Item {
	return b.list.SelectedItem()
}

// SetItems sets the list items.
func (b *Base) SetItems(items []list.Item) tea.Cmd {
	return b.list.SetItems(items)
}

// SetTitle sets the list title.
func (b *Base) SetTitle(title string) {
	b.list.Title = title
}
