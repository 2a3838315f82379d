// Package state owns the live library tree. All mutations go through
// Container.Modify, which persists the whole tree and tells subscribers
// which entities changed.
package state

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/store"
	"go.uber.org/zap"
)

// KV is the persistence the container needs.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Container holds the in-memory state and its persistence.
type Container struct {
	mu     sync.Mutex
	kv     KV
	log    *zap.Logger
	state  *library.AppState
	prints map[string]string
	subs   []func(Change)
}

// New returns a container holding the default empty state. Call Load to
// read the persisted tree.
func New(kv KV, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	s := library.Default()
	return &Container{kv: kv, log: log, state: s, prints: fingerprints(s)}
}

// Load reads the persisted state. A missing or unparsable blob yields the
// default empty state; the parse failure is logged, not returned.
func (c *Container) Load() *library.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.readLocked()
	c.prints = fingerprints(c.state)
	return c.state.Clone()
}

func (c *Container) readLocked() *library.AppState {
	raw, err := c.kv.Get(store.KeyState)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Error("reading persisted state", zap.Error(err))
		}
		return library.Default()
	}

	s, err := library.Decode(raw)
	if err != nil {
		c.log.Warn("failed to parse state, starting empty", zap.Error(err), zap.Int("bytes", len(raw)))
		return library.Default()
	}

	// Decode normalizes; persist any backfilled ids or gradients so they
	// stay stable across runs.
	if normalized, err := library.Marshal(s); err == nil && !bytes.Equal(normalized, raw) {
		if err := c.kv.Put(store.KeyState, normalized); err != nil {
			c.log.Warn("saving normalized state", zap.Error(err))
		}
	}
	return s
}

// Save overwrites the stored blob with the full tree.
func (c *Container) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Container) saveLocked() error {
	data, err := library.Marshal(c.state)
	if err != nil {
		return err
	}
	if err := c.kv.Put(store.KeyState, data); err != nil {
		c.log.Error("persisting state", zap.Error(err))
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Modify applies fn to the live state, persists the whole tree, and
// notifies subscribers. An error from fn is returned as-is and nothing is
// saved or published; edits fn already made stay in memory.
func (c *Container) Modify(fn func(*library.AppState) error) error {
	return c.modify(fn, true, false)
}

// ModifyQuiet is Modify without notifying subscribers.
func (c *Container) ModifyQuiet(fn func(*library.AppState) error) error {
	return c.modify(fn, false, false)
}

func (c *Container) modify(fn func(*library.AppState) error, notify, replaced bool) error {
	res, err := c.apply(fn, replaced)
	if err != nil {
		return err
	}
	if notify {
		for _, sub := range res.subs {
			sub(res.change)
		}
	}
	return res.saveErr
}

type applied struct {
	change  Change
	subs    []func(Change)
	saveErr error
}

func (c *Container) apply(fn func(*library.AppState) error, replaced bool) (applied, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevActive, prevTheme := c.state.Active, c.state.ActiveTheme
	if err := fn(c.state); err != nil {
		return applied{}, err
	}
	res := applied{saveErr: c.saveLocked()}

	next := fingerprints(c.state)
	res.change = diff(c.prints, next)
	c.prints = next
	res.change.ActiveChanged = prevActive != c.state.Active
	res.change.ThemeChanged = prevTheme != c.state.ActiveTheme
	res.change.Replaced = replaced
	sortChange(&res.change)
	res.subs = append([]func(Change){}, c.subs...)
	return res, nil
}

// Replace swaps in a whole new tree, as an import does.
func (c *Container) Replace(s *library.AppState) error {
	return c.modify(func(cur *library.AppState) error {
		theme := cur.ActiveTheme
		*cur = *s.Clone()
		if cur.ActiveTheme == "" {
			cur.ActiveTheme = theme
		}
		library.Normalize(cur)
		return nil
	}, true, true)
}

// Snapshot returns a deep copy of the current tree.
func (c *Container) Snapshot() *library.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers fn to run after every notifying mutation. It runs
// on the goroutine that called Modify.
func (c *Container) Subscribe(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func sortChange(c *Change) {
	sort.Strings(c.Added)
	sort.Strings(c.Updated)
	sort.Strings(c.Removed)
}
