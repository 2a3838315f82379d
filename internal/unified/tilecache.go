package unified

import "github.com/blackwell-systems/aethernote/internal/state"

// tileCache keeps rendered shelves and tiles keyed by entity id. A book's
// entry also lives inside its shelf's rendering, so dropping a book drops
// the shelf too.
type tileCache struct {
	width   int
	entries map[string]cachedTile
	parent  map[string]string // book id → shelf id
}

// cachedTile remembers the slot (shelf position) it was drawn for, since
// the shortcut digit depends on it.
type cachedTile struct {
	slot int
	text string
}

func newTileCache() *tileCache {
	return &tileCache{
		entries: make(map[string]cachedTile),
		parent:  make(map[string]string),
	}
}

func (c *tileCache) get(id string, slot int) (string, bool) {
	v, ok := c.entries[id]
	if !ok || v.slot != slot {
		return "", false
	}
	return v.text, true
}

func (c *tileCache) put(id string, slot int, rendered string) {
	c.entries[id] = cachedTile{slot: slot, text: rendered}
}

func (c *tileCache) setParent(bookID, shelfID string) {
	c.parent[bookID] = shelfID
}

func (c *tileCache) drop(id string) {
	delete(c.entries, id)
	if p, ok := c.parent[id]; ok {
		delete(c.entries, p)
		delete(c.parent, id)
	}
}

func (c *tileCache) clear() {
	clear(c.entries)
	clear(c.parent)
}

// resize drops everything when the layout width changes.
func (c *tileCache) resize(width int) {
	if width != c.width {
		c.clear()
		c.width = width
	}
}

// invalidate drops the entries a mutation touched.
func (c *tileCache) invalidate(ch state.Change) {
	if ch.Replaced || ch.ThemeChanged {
		c.clear()
		return
	}
	for _, set := range [][]string{ch.Added, ch.Updated, ch.Removed} {
		for _, id := range set {
			c.drop(id)
		}
	}
}
