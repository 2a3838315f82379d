// Package delegate provides a list.ItemDelegate that only needs a render
// function.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc is a function that renders a list item.
// It receives the writer, list model, item index, and the item itself.
type RenderFunc func(w io.Writer, m list.Model, index int, item list.Item)

// Base provides a reusable delegate implementation.
type Base struct {
	height   int
	spacing  int
	renderFn RenderFunc
}

// New creates a single-line delegate with no spacing.
func New(renderFn RenderFunc) Base {
	return Base{
		height:   1,
		spacing:  0,
		renderFn: renderFn,
	}
}

// NewWithLayout creates a delegate whose items span height lines with
// spacing blank lines between them.
func NewWithLayout(renderFn RenderFunc, height, spacing int) Base {
	if height < 1 {
		height = 1
	}
	return Base{
		height:   height,
		spacing:  spacing,
		renderFn: renderFn,
	}
}

// Height implements list.ItemDelegate
func (d Base) Height() int {
	return d.height
}

// Spacing implements list.ItemDelegate
func (d Base) Spacing() int {
	return d.spacing
}

// Update implements list.ItemDelegate
func (d Base) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render implements list.ItemDelegate
func (d Base) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, m, index, item)
	}
}
