// Package theme holds the built-in, system and user themes and turns a
// theme's style variables into terminal colors and CSS.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Theme errors.
var (
	ErrInvalidTheme   = errors.New(`invalid theme file: missing "name" or "styles" property`)
	ErrSystemTheme    = errors.New("system themes cannot be deleted")
	ErrImportCanceled = errors.New("theme import canceled")
	ErrNotFound       = errors.New("theme not found")
)

// Style categories. Every category except icons holds CSS variables.
const (
	CategoryColors     = "colors"
	CategoryDimensions = "dimensions"
	CategoryShadows    = "shadows"
	CategoryIcons      = "icons"
)

// Styles maps a category to its variables, e.g. "colors" → "--accent" → "#00d5ff".
type Styles map[string]map[string]string

// Theme is a named set of style variables.
type Theme struct {
	Name     string `json:"name"`
	IsSystem bool   `json:"isSystem,omitempty"`
	Styles   Styles `json:"styles"`
}

// Color returns the color variable key, or "".
func (t Theme) Color(key string) string {
	return t.Styles[CategoryColors][key]
}

// ParseImport decodes a theme file. The top level must carry a non-empty
// name and a styles object. The result is never a system theme.
func ParseImport(data []byte) (Theme, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	var name string
	if err := json.Unmarshal(probe["name"], &name); err != nil || strings.TrimSpace(name) == "" {
		return Theme{}, ErrInvalidTheme
	}
	styles := strings.TrimSpace(string(probe["styles"]))
	if !strings.HasPrefix(styles, "{") {
		return Theme{}, ErrInvalidTheme
	}

	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	t.IsSystem = false
	return t, nil
}

func (t Theme) clone() Theme {
	out := Theme{Name: t.Name, IsSystem: t.IsSystem}
	if t.Styles != nil {
		out.Styles = make(Styles, len(t.Styles))
		for cat, vars := range t.Styles {
			m := make(map[string]string, len(vars))
			for k, v := range vars {
				m[k] = v
			}
			out.Styles[cat] = m
		}
	}
	return out
}
