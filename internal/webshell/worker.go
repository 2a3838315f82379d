// Package webshell serves the read-only offline shell: a static rendering
// of the library plus its data files, kept in a versioned on-disk cache.
package webshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"sync"

	"go.uber.org/zap"
)

// State is the worker lifecycle.
type State string

const (
	StateInstalling State = "installing"
	StateActive     State = "active"
	StateUpdating   State = "updating"
)

// Worker fills and serves the asset cache.
type Worker struct {
	cache  *Cache
	origin Origin
	log    *zap.Logger

	mu      sync.RWMutex
	state   State
	version int // active cache version; 0 before the first install
}

// NewWorker creates a worker caching into dir. It picks up the newest
// cache already on disk but does not serve it until Install.
func NewWorker(dir string, origin Origin, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		cache:  NewCache(dir),
		origin: origin,
		log:    log,
		state:  StateInstalling,
	}
}

// State returns the current lifecycle state.
func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// CacheName returns the active cache name, or "" before activation.
func (w *Worker) CacheName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.state != StateActive || w.version == 0 {
		return ""
	}
	return CacheName(w.version)
}

// Install caches every asset under the newest on-disk version (or v1)
// and activates it.
func (w *Worker) Install(ctx context.Context) error {
	versions, err := w.cache.Versions()
	if err != nil {
		return fmt.Errorf("listing caches: %w", err)
	}
	next := 1
	if len(versions) > 0 {
		next = versions[len(versions)-1]
	}

	w.setState(StateInstalling)
	return w.fill(ctx, next)
}

// Update renders every asset into a new cache version and swaps to it.
// The previous cache keeps serving until the new one is complete.
func (w *Worker) Update(ctx context.Context) error {
	w.mu.Lock()
	next := w.version + 1
	w.state = StateUpdating
	w.mu.Unlock()

	return w.fill(ctx, next)
}

func (w *Worker) fill(ctx context.Context, version int) error {
	name := CacheName(version)
	for _, p := range Assets {
		if err := ctx.Err(); err != nil {
			w.abort()
			return err
		}
		doc, err := w.origin.Render(p)
		if err != nil {
			w.abort()
			return fmt.Errorf("rendering %s: %w", p, err)
		}
		if err := w.cache.Store(name, p, bytes.NewReader(doc.Body)); err != nil {
			w.abort()
			return fmt.Errorf("caching %s: %w", p, err)
		}
	}
	w.activate(version)
	return nil
}

// activate makes version current and deletes every other cache.
func (w *Worker) activate(version int) {
	name := CacheName(version)
	w.mu.Lock()
	w.version = version
	w.state = StateActive
	w.mu.Unlock()

	removed, err := w.cache.Prune(name)
	if err != nil {
		w.log.Warn("pruning old caches", zap.Error(err))
	}
	w.log.Info("cache activated", zap.String("cache", name), zap.Strings("removed", removed))
}

// abort returns to the previous cache, if any.
func (w *Worker) abort() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.version > 0 {
		w.state = StateActive
	} else {
		w.state = StateInstalling
	}
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// ServeHTTP answers GET and HEAD for known assets, cache first.
func (w *Worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		rw.Header().Set("Allow", "GET, HEAD")
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p := path.Clean("/" + r.URL.Path)
	if !isAsset(p) {
		http.NotFound(rw, r)
		return
	}

	if name := w.CacheName(); name != "" {
		f, err := w.cache.Open(name, p)
		if err == nil {
			defer f.Close()
			w.write(rw, r, contentType(p), "hit", f)
			return
		}
		w.log.Debug("cache miss", zap.String("path", p), zap.Error(err))
	}

	doc, err := w.origin.Render(p)
	if err != nil {
		if errors.Is(err, ErrUnknownAsset) {
			http.NotFound(rw, r)
			return
		}
		w.log.Error("render failed", zap.String("path", p), zap.Error(err))
		http.Error(rw, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.write(rw, r, doc.ContentType, "miss", bytes.NewReader(doc.Body))
}

func (w *Worker) write(rw http.ResponseWriter, r *http.Request, ctype, status string, body io.Reader) {
	rw.Header().Set("Content-Type", ctype)
	rw.Header().Set("X-Aethernote-Cache", status)
	rw.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(rw, body); err != nil {
		w.log.Debug("write response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func contentType(p string) string {
	switch path.Ext(p) {
	case "", ".html":
		return "text/html; charset=utf-8"
	case ".json":
		if p == "/manifest.json" {
			return "application/manifest+json"
		}
		return "application/json"
	}
	if t := mime.TypeByExtension(path.Ext(p)); t != "" {
		return t
	}
	return "application/octet-stream"
}
