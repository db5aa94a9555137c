// Package colors loads the party color palette used by the seat chart and
// the similarity graph.
package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultColor is used for parties absent from the palette, including the
// Unknown sentinel party.
const DefaultColor = "gray"

// Color is one party's palette entry.
type Color struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Palette maps the lowercased party name to its colors.
type Palette map[string]Color

// Load reads a palette file. Keys are lowercased on load so lookups are
// case-insensitive.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read party colors: %w", err)
	}

	var raw map[string]Color
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse party colors %s: %w", path, err)
	}

	palette := make(Palette, len(raw))
	for name, color := range raw {
		palette[strings.ToLower(name)] = color
	}
	return palette, nil
}

// Primary returns the party's primary color, or DefaultColor when the party
// is unknown or has no primary set. A nil Palette always answers the
// default, so callers need no palette to render.
func (p Palette) Primary(party string) string {
	if color, ok := p[strings.ToLower(party)]; ok && color.Primary != "" {
		return color.Primary
	}
	return DefaultColor
}
