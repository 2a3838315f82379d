package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind selects how a dialog behaves.
type DialogKind int

const (
	DialogPrompt DialogKind = iota
	DialogConfirm
	DialogAlert
)

// DialogResult is what the user answered. For a prompt, OK is false when
// the dialog was canceled or the trimmed input was empty.
type DialogResult struct {
	Kind  DialogKind
	OK    bool
	Value string
}

// Dialog is a modal prompt, confirmation or alert drawn over a view.
type Dialog struct {
	kind    DialogKind
	title   string
	message string
	input   textinput.Model
	confirm bool // focused button of a confirm dialog
	done    bool
	result  DialogResult
}

const dialogWidth = 48

// NewPrompt asks for a line of text.
func NewPrompt(title, placeholder, initial string) Dialog {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(initial)
	in.CursorEnd()
	in.CharLimit = 200
	in.Width = dialogWidth - 6
	in.Prompt = "│ "
	in.Focus()
	return Dialog{kind: DialogPrompt, title: title, input: in}
}

// NewConfirm asks a yes/no question. Cancel is focused first.
func NewConfirm(message string) Dialog {
	return Dialog{kind: DialogConfirm, title: "Confirm Action", message: message}
}

// NewAlert shows a message until dismissed.
func NewAlert(message string) Dialog {
	return Dialog{kind: DialogAlert, title: "Notice", message: message}
}

// Init starts the cursor blink for prompts.
func (d Dialog) Init() tea.Cmd {
	if d.kind == DialogPrompt {
		return textinput.Blink
	}
	return nil
}

// Done reports whether the user has answered.
func (d Dialog) Done() bool { return d.done }

// Result returns the answer once Done.
func (d Dialog) Result() DialogResult { return d.result }

// Kind returns the dialog kind.
func (d Dialog) Kind() DialogKind { return d.kind }

func (d Dialog) finish(ok bool, value string) Dialog {
	d.done = true
	d.result = DialogResult{Kind: d.kind, OK: ok, Value: value}
	return d
}

// Update handles a key press.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if d.done {
		return d, nil
	}
	km, isKey := msg.(tea.KeyMsg)

	switch d.kind {
	case DialogPrompt:
		if isKey {
			switch km.String() {
			case "esc", "ctrl+c":
				return d.finish(false, ""), nil
			case "enter":
				v := strings.TrimSpace(d.input.Value())
				return d.finish(v != "", v), nil
			}
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd

	case DialogConfirm:
		if !isKey {
			return d, nil
		}
		switch km.String() {
		case "esc", "n", "N", "ctrl+c":
			return d.finish(false, ""), nil
		case "y", "Y":
			return d.finish(true, ""), nil
		case "tab", "shift+tab", "left", "right", "h", "l":
			d.confirm = !d.confirm
		case "enter":
			return d.finish(d.confirm, ""), nil
		}

	case DialogAlert:
		if isKey {
			switch km.String() {
			case "enter", "esc", " ", "q":
				return d.finish(true, ""), nil
			}
		}
	}
	return d, nil
}

// View renders the dialog box.
func (d Dialog) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(d.title))
	b.WriteString("\n\n")

	switch d.kind {
	case DialogPrompt:
		b.WriteString(d.input.View())
		b.WriteString("\n\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "enter ok"},
			{Label: "esc cancel"},
		}, ""))

	case DialogConfirm:
		b.WriteString(lipgloss.NewStyle().Width(dialogWidth - 4).Render(d.message))
		b.WriteString("\n\n")
		cancel, ok := "  Cancel  ", "  Confirm  "
		button := lipgloss.NewStyle().Foreground(ColorDim)
		focused := lipgloss.NewStyle().Foreground(ColorInk).Bold(true).Underline(true)
		if d.confirm {
			b.WriteString(button.Render(cancel) + " " + focused.Foreground(ColorDanger).Render(ok))
		} else {
			b.WriteString(focused.Render(cancel) + " " + button.Render(ok))
		}
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render("y/n • ←/→ choose • enter"))

	case DialogAlert:
		b.WriteString(lipgloss.NewStyle().Width(dialogWidth - 4).Render(d.message))
		b.WriteString("\n\n")
		b.WriteString(StyleHelp.Render("enter ok"))
	}

	box := StyleActiveBorder.Padding(1, 2).Width(dialogWidth)
	return box.Render(b.String())
}

// Overlay centers a dialog in a width×height area.
func Overlay(width, height int, dialog string) string {
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
