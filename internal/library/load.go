package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Decode unmarshals a persisted state blob and normalizes it.
func Decode(data []byte) (*AppState, error) {
	s := Default()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	Normalize(s)
	return s, nil
}

// Parse validates and decodes an exported library file. The only
// structural requirement is that "bookshelves" is an array. A missing
// "activeTheme" is left empty so the caller can keep its current theme.
func Parse(data []byte) (*AppState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	shelves, ok := raw["bookshelves"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(shelves), []byte("[")) {
		return nil, fmt.Errorf("%w: bookshelves must be a list", ErrInvalidFormat)
	}

	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	theme := s.ActiveTheme
	Normalize(&s)
	s.ActiveTheme = theme
	return &s, nil
}

// ReadFile parses an exported library file from disk.
func ReadFile(path string) (*AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}
