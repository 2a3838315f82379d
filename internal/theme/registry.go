package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/store"
	"go.uber.org/zap"
)

// KV is where user themes are persisted.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Registry merges built-in, system (remote) and user themes.
type Registry struct {
	mu     sync.RWMutex
	kv     KV
	log    *zap.Logger
	system []Theme
	user   []Theme
}

// NewRegistry returns a registry holding only the built-ins.
func NewRegistry(kv KV, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{kv: kv, log: log}
}

// LoadUser reads the persisted user themes. A missing key means none.
func (r *Registry) LoadUser() error {
	raw, err := r.kv.Get(store.KeyThemes)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading user themes: %w", err)
	}

	var themes []Theme
	if err := json.Unmarshal(raw, &themes); err != nil {
		r.log.Warn("failed to parse user themes, ignoring", zap.Error(err))
		return nil
	}
	for i := range themes {
		themes[i].IsSystem = false
	}

	r.mu.Lock()
	r.user = themes
	r.mu.Unlock()
	return nil
}

// SaveUser persists the user theme list.
func (r *Registry) SaveUser() error {
	r.mu.RLock()
	data, err := json.Marshal(r.userOrEmpty())
	r.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := r.kv.Put(store.KeyThemes, data); err != nil {
		return fmt.Errorf("saving user themes: %w", err)
	}
	return nil
}

func (r *Registry) userOrEmpty() []Theme {
	if r.user == nil {
		return []Theme{}
	}
	return r.user
}

// SetSystem replaces the remote system themes. Each is marked system.
func (r *Registry) SetSystem(themes []Theme) {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		t = t.clone()
		t.IsSystem = true
		out = append(out, t)
	}
	r.mu.Lock()
	r.system = out
	r.mu.Unlock()
}

// All returns built-ins, then system themes, then user themes.
func (r *Registry) All() []Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := Builtins()
	for _, t := range r.system {
		all = append(all, t.clone())
	}
	for _, t := range r.user {
		all = append(all, t.clone())
	}
	return all
}

// User returns a copy of the user themes.
func (r *Registry) User() []Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Theme, 0, len(r.user))
	for _, t := range r.user {
		out = append(out, t.clone())
	}
	return out
}

// Lookup finds a theme by exact name.
func (r *Registry) Lookup(name string) (Theme, bool) {
	for _, t := range r.All() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName finds a theme by exact name, falling back to the first built-in.
func (r *Registry) ByName(name string) Theme {
	if t, ok := r.Lookup(name); ok {
		return t
	}
	return Builtins()[0]
}

// Import adds t to the user themes and persists them. When a user theme
// with the same name (ignoring case) exists, overwrite decides; a nil
// callback or a false answer returns ErrImportCanceled.
func (r *Registry) Import(t Theme, overwrite func(name string) bool) error {
	if strings.TrimSpace(t.Name) == "" || t.Styles == nil {
		return ErrInvalidTheme
	}
	t = t.clone()
	t.IsSystem = false

	r.mu.RLock()
	idx := -1
	for i, u := range r.user {
		if strings.EqualFold(u.Name, t.Name) {
			idx = i
			break
		}
	}
	r.mu.RUnlock()

	if idx >= 0 && (overwrite == nil || !overwrite(t.Name)) {
		return ErrImportCanceled
	}

	r.mu.Lock()
	if idx >= 0 && idx < len(r.user) {
		r.user[idx] = t
	} else {
		r.user = append(r.user, t)
	}
	r.mu.Unlock()

	r.log.Info("imported theme", zap.String("name", t.Name), zap.Bool("overwrite", idx >= 0))
	return r.SaveUser()
}

// Delete removes the user theme called name and persists the list.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	kept := r.user[:0:0]
	found := false
	for _, u := range r.user {
		if u.Name == name {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if found {
		r.user = kept
	}
	r.mu.Unlock()

	if !found {
		if t, ok := r.Lookup(name); ok && t.IsSystem {
			return fmt.Errorf("%q: %w", name, ErrSystemTheme)
		}
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return r.SaveUser()
}

// Modifier is the state mutation entry point Apply records through.
type Modifier interface {
	Modify(fn func(*library.AppState) error) error
}

// Apply records t as the active theme.
func Apply(m Modifier, t Theme) error {
	return m.Modify(func(s *library.AppState) error {
		s.ActiveTheme = t.Name
		return nil
	})
}
