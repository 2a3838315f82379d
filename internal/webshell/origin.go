package webshell

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/theme"
)

//go:embed assets/manifest.json assets/icon.svg
var assets embed.FS

// Assets is the fixed list of paths the worker caches.
var Assets = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/themes.json",
	"/library.json",
	"/icon.svg",
}

// ErrUnknownAsset is returned for paths outside Assets.
var ErrUnknownAsset = errors.New("unknown asset")

// Document is a rendered asset.
type Document struct {
	ContentType string
	Body        []byte
}

// Origin produces assets on demand. It stands in for the network.
type Origin interface {
	Render(path string) (Document, error)
}

// Snapshotter yields the library to publish.
type Snapshotter interface {
	Snapshot() *library.AppState
}

// Shell renders the app shell from live state and themes.
type Shell struct {
	State  Snapshotter
	Themes *theme.Registry
}

// Render implements Origin.
func (s Shell) Render(path string) (Document, error) {
	switch path {
	case "/", "/index.html":
		snap := s.State.Snapshot()
		t := s.Themes.ByName(snap.ActiveTheme)
		return Document{contentType(path), []byte(GenerateHTML(snap, t))}, nil

	case "/library.json":
		b, err := library.Marshal(s.State.Snapshot())
		if err != nil {
			return Document{}, err
		}
		return Document{contentType(path), b}, nil

	case "/themes.json":
		b, err := json.MarshalIndent(theme.Manifest{Themes: s.Themes.All()}, "", "  ")
		if err != nil {
			return Document{}, err
		}
		return Document{contentType(path), b}, nil

	case "/manifest.json":
		b, err := assets.ReadFile("assets/manifest.json")
		if err != nil {
			return Document{}, err
		}
		return Document{contentType(path), b}, nil

	case "/icon.svg":
		b, err := assets.ReadFile("assets/icon.svg")
		if err != nil {
			return Document{}, err
		}
		return Document{contentType(path), b}, nil
	}
	return Document{}, fmt.Errorf("%s: %w", path, ErrUnknownAsset)
}

func isAsset(path string) bool {
	for _, a := range Assets {
		if a == path {
			return true
		}
	}
	return false
}
