package unified

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	shelfWidth  = 38 // outer width of a shelf box in multi-column layout
	shelfGap    = 2  // columns between shelf boxes
	narrowWidth = 60 // below this, shelves stack in one full-width column
	tileWidth   = 10
	tileGap     = 1
	resultWidth = 26 // search result tile width
	tabMax      = 10 // tab names longer than this are cut and get "…"
	chromeLines = 4  // tabs, header, blank, footer
)

func (m LibraryModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	body, _, _ := m.renderBody()
	lines := strings.Split(body, "\n")
	if h := m.bodyHeight(); h > 0 {
		start := min(m.offset, max(0, len(lines)-1))
		end := min(len(lines), start+h)
		lines = lines[start:end]
		for len(lines) < h {
			lines = append(lines, "")
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(tui.RenderFooterBar(tui.Shortcuts(m.keys.ShortHelp()...), m.activeCmd))
	return b.String()
}

func (m LibraryModel) bodyHeight() int {
	return m.height - chromeLines
}

func truncateTab(name string) string {
	if lipgloss.Width(name) <= tabMax {
		return name
	}
	return xansi.Truncate(name, tabMax+1, "…")
}

func (m LibraryModel) renderTabs() string {
	snap := m.sess.snap
	active := lipgloss.NewStyle().
		Foreground(tui.ColorAccent).
		Background(tui.ColorPanel).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(tui.ColorDim).
		Padding(0, 1)

	var tabs []string
	for i, bs := range snap.Bookshelves {
		if i == snap.Active {
			tabs = append(tabs, active.Render(truncateTab(bs.Name)))
		} else {
			tabs = append(tabs, inactive.Render(truncateTab(bs.Name)))
		}
	}
	tabs = append(tabs, inactive.Render(m.sess.icons["plus"]))
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var search string
	if m.searching || m.Query() != "" {
		search = m.search.View()
	} else {
		search = tui.StyleHelp.Render(m.sess.icons["search"] + " search")
	}
	gap := m.width - lipgloss.Width(row) - lipgloss.Width(search)
	if gap < 2 {
		return row
	}
	return row + strings.Repeat(" ", gap) + search
}

func (m LibraryModel) renderHeader() string {
	if q := m.Query(); q != "" {
		n := len(library.Search(m.sess.snap, q))
		return tui.StyleHeader.Render(fmt.Sprintf("Search results for “%s” — %d found", q, n))
	}
	cur := m.sess.snap.Current()
	if cur == nil {
		return tui.StyleHeader.Render("No bookshelves yet")
	}
	books := 0
	for _, sh := range cur.Shelves {
		books += len(sh.Books)
	}
	stats := tui.StyleHelp.Render(fmt.Sprintf("  %d shelves · %d notes", len(cur.Shelves), books))
	return tui.StyleHeader.Render(xansi.Truncate(cur.Name, max(10, m.width-30), "…")) + stats
}

// renderBody returns the scrollable body and the line span of the
// selection within it.
func (m LibraryModel) renderBody() (string, int, int) {
	if m.Query() != "" {
		return m.renderResults()
	}
	cur := m.sess.snap.Current()
	if cur == nil {
		return tui.StyleHelp.Render("Press n to create your first bookshelf."), 0, 0
	}
	if len(cur.Shelves) == 0 {
		return tui.StyleHelp.Render("No shelves yet. Press s to add one."), 0, 0
	}
	return m.renderShelves(cur)
}

func (m LibraryModel) columns() (int, int) {
	if m.width < narrowWidth {
		return 1, max(m.width, 20)
	}
	return library.Columns(m.width, shelfWidth, shelfGap), shelfWidth
}

func (m LibraryModel) renderShelves(bs *library.Bookshelf) (string, int, int) {
	cols, width := m.columns()
	m.sess.tiles.resize(width)

	boxes := make([]string, len(bs.Shelves))
	heights := make([]int, len(bs.Shelves))
	selOffset, selSpan := 0, 1
	for i := range bs.Shelves {
		sel := -2
		if i == m.shelf {
			sel = m.item
		}
		boxes[i], heights[i] = m.shelfBox(&bs.Shelves[i], i, width, sel)
		if i == m.shelf {
			selOffset, selSpan = selectionOffset(&bs.Shelves[i], m.item, width)
		}
	}

	placements, _ := library.Masonry(heights, cols, 1)
	stacks := make([][]string, cols)
	for i, p := range placements {
		if len(stacks[p.Column]) > 0 {
			stacks[p.Column] = append(stacks[p.Column], "")
		}
		stacks[p.Column] = append(stacks[p.Column], boxes[i])
	}
	var parts []string
	for c, stack := range stacks {
		if len(stack) == 0 {
			continue
		}
		if c > 0 {
			parts = append(parts, strings.Repeat(" ", shelfGap))
		}
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, stack...))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	top := 0
	if m.shelf < len(placements) {
		top = placements[m.shelf].Top + selOffset
	}
	return body, top, top + selSpan
}

// shelfBox renders one shelf. sel is the selected item inside it, or -2
// when the selection is elsewhere; only unselected shelves are cached.
func (m LibraryModel) shelfBox(sh *library.Shelf, idx, width, sel int) (string, int) {
	cache := m.sess.tiles
	if sel == -2 {
		if box, ok := cache.get(sh.ID, idx); ok {
			return box, lipgloss.Height(box)
		}
	}

	inner := width - 4
	icons := m.sess.icons

	shortcut := " "
	if idx < 10 {
		shortcut = strconv.Itoa((idx + 1) % 10)
	}
	chevron := icons["chevronDown"]
	if sh.Collapsed {
		chevron = icons["chevronRight"]
	}
	controls := icons["plus"] + " " + icons["trash"] + " " + chevron
	nameWidth := inner - lipgloss.Width(controls) - 3
	name := xansi.Truncate(sh.Name, max(nameWidth, 1), "…")

	barStyle := tui.StyleNormal.Bold(true)
	if sel == -1 {
		barStyle = tui.StyleHighlight.Underline(true)
	}
	left := tui.StyleHelp.Render(shortcut) + " " + barStyle.Render(name)
	pad := inner - lipgloss.Width(left) - lipgloss.Width(controls)
	bar := left + strings.Repeat(" ", max(pad, 1)) + tui.StyleHelp.Render(controls)

	lines := []string{bar}
	if !sh.Collapsed {
		lines = append(lines, "", m.shelfTiles(sh, inner, sel))
	}

	style := tui.StyleBorder
	if sel != -2 {
		style = tui.StyleActiveBorder
	}
	box := style.Width(width-2).Padding(0, 1).Render(strings.Join(lines, "\n"))
	if sel == -2 {
		cache.put(sh.ID, idx, box)
		for _, bk := range sh.Books {
			cache.setParent(bk.ID, sh.ID)
		}
	}
	return box, lipgloss.Height(box)
}

func (m LibraryModel) shelfTiles(sh *library.Shelf, inner, sel int) string {
	cache := m.sess.tiles
	tiles := make([]string, 0, len(sh.Books)+1)
	for k, bk := range sh.Books {
		if k == sel {
			tiles = append(tiles, tui.RenderTile(bk.Title, bk.Gradient, tileWidth, true))
			continue
		}
		tile, ok := cache.get(bk.ID, 0)
		if !ok {
			tile = tui.RenderTile(bk.Title, bk.Gradient, tileWidth, false)
			cache.put(bk.ID, 0, tile)
		}
		tiles = append(tiles, tile)
	}
	tiles = append(tiles, tui.RenderAddTile(m.sess.icons["plus"], sh.AddGradient, tileWidth, sel == len(sh.Books)))
	return gridRows(tiles, library.Columns(inner, tileWidth, tileGap), tileGap)
}

// gridRows lays tiles out left to right, cols per row, one blank line
// between rows.
func gridRows(tiles []string, cols, gap int) string {
	cols = max(cols, 1)
	spacer := strings.Repeat(" ", gap)
	var rows []string
	for start := 0; start < len(tiles); start += cols {
		end := min(start+cols, len(tiles))
		var row []string
		for i, t := range tiles[start:end] {
			if i > 0 {
				row = append(row, spacer)
			}
			row = append(row, t)
		}
		if len(rows) > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// selectionOffset is the line offset and height of item inside its shelf box.
func selectionOffset(sh *library.Shelf, item, width int) (int, int) {
	if item < 0 || sh.Collapsed {
		return 0, 3
	}
	cols := max(library.Columns(width-4, tileWidth, tileGap), 1)
	row := item / cols
	// border, bar, blank line, then rows of tiles with a blank line between
	return 3 + row*(tui.TileHeight+1), tui.TileHeight + 1
}

func (m LibraryModel) resultColumns() int {
	return max(library.Columns(m.width, resultWidth, 2), 1)
}

func (m LibraryModel) renderResults() (string, int, int) {
	hits := library.Search(m.sess.snap, m.Query())
	if len(hits) == 0 {
		return tui.StyleHelp.Render("Nothing matches."), 0, 0
	}
	tiles := make([]string, len(hits))
	for i, h := range hits {
		tiles[i] = tui.RenderTile(h.Label(), h.Book.Gradient, resultWidth, i == m.hit)
	}
	cols := m.resultColumns()
	row := m.hit / cols
	top := row * (tui.TileHeight + 1)
	return gridRows(tiles, cols, 2), top, top + tui.TileHeight
}
