package unified

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/blackwell-systems/aethernote/internal/tui/delegate"
	"github.com/blackwell-systems/aethernote/internal/tui/picker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type tagItem struct {
	name  string
	count int
}

func (t tagItem) FilterValue() string { return t.name }

// TagsModel lists every tag in the library. Choosing one searches for it.
type TagsModel struct {
	sess *session
	base picker.Base
	keys tui.StandardKeys
}

func NewTagsModel(sess *session, width, height int) TagsModel {
	keys := tui.NewStandardKeys()

	l := list.New(nil, delegate.New(renderTagItem), 0, 0)
	l.Title = "Tags"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	m := TagsModel{sess: sess, keys: keys}
	m.base = picker.New(picker.Config{
		List:       l,
		BackKeys:   keys.Back,
		SelectKeys: keys.Select,
		OnSelect: func(it list.Item) tea.Cmd {
			return navigate(ViewLibrary, it.(tagItem).name)
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
	m.base.SetItems(tagItems(sess.snap))
	m.base.SetSize(width, height)
	return m
}

func tagItems(s *library.AppState) []list.Item {
	counts := library.TagCounts(s)
	items := make([]list.Item, 0, len(counts))
	for _, name := range library.AllTags(s) {
		items = append(items, tagItem{name: name, count: counts[name]})
	}
	return items
}

func (m TagsModel) Init() tea.Cmd { return nil }

func (m TagsModel) Update(msg tea.Msg) (TagsModel, tea.Cmd) {
	cmd := m.base.Update(msg)
	return m, cmd
}

func (m TagsModel) View() string {
	if len(m.base.List().Items()) == 0 {
		return tui.StyleBorder.Padding(1, 2).Render(
			tui.StyleHeader.Render("Tags") + "\n\n" +
				tui.StyleHelp.Render("No tags yet. Add tags from the note editor.") + "\n\n" +
				tui.RenderFooterBar(tui.Shortcuts(m.keys.Back), ""))
	}
	return m.base.View()
}

func renderTagItem(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(tagItem)
	if !ok {
		return
	}
	noun := "notes"
	if t.count == 1 {
		noun = "note"
	}
	line := fmt.Sprintf("%s %s", tui.StyleTag.Render("#"+t.name), tui.StyleHelp.Render(fmt.Sprintf("%d %s", t.count, noun)))
	if index == m.Index() {
		_, _ = fmt.Fprint(w, tui.StyleHighlight.Render("› ")+line)
		return
	}
	_, _ = fmt.Fprint(w, "  "+line)
}
