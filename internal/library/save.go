package library

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/aethernote/internal/util"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the state as indented JSON, the export format.
func Marshal(s *AppState) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return append(data, '\n'), nil
}

// MarshalYAML encodes the state as YAML for human-readable exports.
func MarshalYAML(s *AppState) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile exports the state to path as JSON, replacing it atomically.
func WriteFile(path string, s *AppState) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data, 0600)
}
