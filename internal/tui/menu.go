package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
)

// MenuItem represents an action in the main menu
type MenuItem struct {
	Key         string
	Label       string
	Description string
	Icon        string
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

// MenuItems returns the menu in display order. icons supplies the glyph
// for each entry; missing glyphs render blank.
func MenuItems(icons map[string]string) []MenuItem {
	return []MenuItem{
		{Key: "export", Label: "Save", Description: "Export the library to a JSON file", Icon: icons["save"]},
		{Key: "import", Label: "Load", Description: "Replace the library from a JSON file", Icon: icons["load"]},
		{Key: "themes", Label: "Themes", Description: "Apply, import or delete themes", Icon: icons["themes"]},
		{Key: "tags", Label: "Tags", Description: "Browse every tag in the library", Icon: icons["tags"]},
		{Key: "refresh-themes", Label: "Update", Description: "Reload system themes", Icon: icons["update"]},
		{Key: "quit", Label: "Quit", Description: "Exit aethernote"},
	}
}

// RenderMenuItem renders a menu item line
func RenderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	icon := menuItem.Icon
	if icon == "" {
		icon = " "
	}
	desc := StyleHelp.Render(menuItem.Description)
	display := fmt.Sprintf("%s  %-10s %s", icon, menuItem.Label, desc)

	if isSelected {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› ")+StyleHighlight.Render(display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}
