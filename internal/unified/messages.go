package unified

import (
	"github.com/blackwell-systems/aethernote/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target View
	Data   any // Optional data for the target view (book id, search query)
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// openDialogMsg puts a dialog over the current view. then runs with the
// answer on the event loop.
type openDialogMsg struct {
	dialog tui.Dialog
	then   func(tui.DialogResult) tea.Cmd
}

// themesRefreshedMsg reports the end of a system theme reload.
type themesRefreshedMsg struct {
	err   error
	quiet bool
}

func navigate(target View, data any) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Target: target, Data: data} }
}

func ask(d tui.Dialog, then func(tui.DialogResult) tea.Cmd) tea.Cmd {
	return func() tea.Msg { return openDialogMsg{dialog: d, then: then} }
}

// prompt asks for text and calls fn only with a non-empty answer.
func prompt(title, placeholder, initial string, fn func(string) tea.Cmd) tea.Cmd {
	return ask(tui.NewPrompt(title, placeholder, initial), func(r tui.DialogResult) tea.Cmd {
		if !r.OK {
			return nil
		}
		return fn(r.Value)
	})
}

// confirm asks a yes/no question and calls fn only on yes.
func confirm(message string, fn func() tea.Cmd) tea.Cmd {
	return ask(tui.NewConfirm(message), func(r tui.DialogResult) tea.Cmd {
		if !r.OK {
			return nil
		}
		return fn()
	})
}

func alert(message string) tea.Cmd {
	return ask(tui.NewAlert(message), func(tui.DialogResult) tea.Cmd { return nil })
}
