package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/aethernote/internal/util"
	"go.uber.org/zap"
)

// ErrInvalidManifest is returned when a manifest has no themes array.
var ErrInvalidManifest = errors.New("invalid themes.json format")

const maxManifestSize = 4 << 20

// Manifest is the shape of themes.json.
type Manifest struct {
	Themes []Theme `json:"themes"`
}

// Fetcher reads theme manifests over HTTP or from disk.
type Fetcher struct {
	http *http.Client
}

// NewFetcher returns a fetcher whose HTTP requests give up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch loads the manifest at source, an http(s) URL or a file path.
// Every returned theme is marked system.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]Theme, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = f.get(ctx, source)
	default:
		data, err = os.ReadFile(util.ExpandHome(strings.TrimPrefix(source, "file://")))
	}
	if err != nil {
		return nil, err
	}
	return DecodeManifest(data)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
}

// checkStatus returns an error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("theme manifest: %w", ErrNotFound)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("theme manifest: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// DecodeManifest parses a themes.json document. Entries without a name
// or styles are skipped.
func DecodeManifest(data []byte) ([]Theme, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	raw := strings.TrimSpace(string(probe["themes"]))
	if !strings.HasPrefix(raw, "[") {
		return nil, ErrInvalidManifest
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	out := make([]Theme, 0, len(m.Themes))
	for _, t := range m.Themes {
		if strings.TrimSpace(t.Name) == "" || t.Styles == nil {
			continue
		}
		t.IsSystem = true
		out = append(out, t)
	}
	return out, nil
}

// LoadRemote fetches system themes from source into the registry. An
// empty source is a no-op. Failures are logged and returned; the
// registry keeps whatever system themes it had.
func (r *Registry) LoadRemote(ctx context.Context, f *Fetcher, source string) error {
	if source == "" {
		return nil
	}
	themes, err := f.Fetch(ctx, source)
	if err != nil {
		r.log.Warn("failed to load system themes", zap.String("source", source), zap.Error(err))
		return err
	}
	r.SetSystem(themes)
	r.log.Debug("loaded system themes", zap.String("source", source), zap.Int("count", len(themes)))
	return nil
}
