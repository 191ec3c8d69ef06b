// Package layout holds the presentation tables mapping categories to
// fixed chart positions, colors, glyphs and display names. The maps are
// hand-authored configuration, not inferred logic; an optional TOML
// file can override individual entries.
package layout

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"tariffsim/src/sensitivity"
)

// Position is a fixed point on the hand-placed bubble grid.
type Position struct {
	X float64
	Y float64
}

// Fallbacks for categories absent from the maps.
const (
	DefaultGlyph = "🔵"
	NeutralColor = "#7f7f7f"
)

// Chart plot bounds (axes are hidden; these frame the grid).
const (
	PlotMinX = -0.5
	PlotMaxX = 2.8
	PlotMinY = -0.6
	PlotMaxY = 1.6
)

// Layout is the resolved presentation mapping.
type Layout struct {
	Positions    map[string]Position
	Glyphs       map[string]string
	DisplayNames map[string]string
	// AccentColors identify categories (legend, table); direction colors
	// win on the bubbles themselves.
	AccentColors    map[string]string
	DirectionColors map[string]string // keys: positive, negative, neutral
}

// Default returns the built-in tables, matching the published layout.
func Default() *Layout {
	return &Layout{
		Positions: map[string]Position{
			"Food":                     {0.0, 1.0},
			"Apparel":                  {1.0, 1.0},
			"Transportation":           {2.0, 1.0},
			"Housing":                  {0.3, 0.0},
			"Medical":                  {1.3, 0.0},
			"All Other Services Goods": {2.3, 0.0},
		},
		Glyphs: map[string]string{
			"Transportation":           "🚗",
			"Food":                     "🍎",
			"Housing":                  "🏠",
			"Apparel":                  "👕",
			"Medical":                  "🏥",
			"All Other Services Goods": "🧰",
		},
		DisplayNames: map[string]string{
			"All Other Services Goods": "Services",
		},
		AccentColors: map[string]string{
			"Transportation":           "#1f77b4",
			"Food":                     "#2ca02c",
			"Housing":                  "#9467bd",
			"Apparel":                  "#ff7f0e",
			"Medical":                  "#d62728",
			"All Other Services Goods": "#17becf",
		},
		DirectionColors: map[string]string{
			"positive": "#2ca02c",
			"negative": "#d62728",
			"neutral":  NeutralColor,
		},
	}
}

// PositionFor returns the fixed position for a category, or (0,0) for
// categories outside the grid.
func (l *Layout) PositionFor(category string) Position {
	if p, ok := l.Positions[category]; ok {
		return p
	}
	return Position{}
}

// GlyphFor returns the category glyph or the generic marker.
func (l *Layout) GlyphFor(category string) string {
	if g, ok := l.Glyphs[category]; ok {
		return g
	}
	return DefaultGlyph
}

// DisplayName returns the short display name, falling back to the raw
// category name.
func (l *Layout) DisplayName(category string) string {
	if n, ok := l.DisplayNames[category]; ok {
		return n
	}
	return category
}

// AccentColor returns the category accent hex, or the neutral gray.
func (l *Layout) AccentColor(category string) string {
	if c, ok := l.AccentColors[category]; ok {
		return c
	}
	return NeutralColor
}

// DirectionColor returns the bubble fill hex for a sign of estimated
// change.
func (l *Layout) DirectionColor(sign int) string {
	key := "neutral"
	if sign > 0 {
		key = "positive"
	} else if sign < 0 {
		key = "negative"
	}
	if c, ok := l.DirectionColors[key]; ok {
		return c
	}
	return NeutralColor
}

// overrides mirrors the TOML file shape. Positions are [x, y] pairs.
type overrides struct {
	Positions       map[string][]float64 `toml:"positions"`
	Glyphs          map[string]string    `toml:"glyphs"`
	DisplayNames    map[string]string    `toml:"display_names"`
	AccentColors    map[string]string    `toml:"colors"`
	DirectionColors map[string]string    `toml:"direction_colors"`
}

// Load returns the default layout merged with overrides from path. An
// absent file yields the defaults; a malformed file is an error.
func Load(path string) (*Layout, error) {
	l := Default()
	if path == "" {
		return l, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	var ov overrides
	if err := toml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	for cat, xy := range ov.Positions {
		if len(xy) != 2 {
			return nil, fmt.Errorf("layout %s: position for %q needs [x, y]", path, cat)
		}
		l.Positions[cat] = Position{X: xy[0], Y: xy[1]}
	}
	for cat, g := range ov.Glyphs {
		l.Glyphs[cat] = g
	}
	for cat, n := range ov.DisplayNames {
		l.DisplayNames[cat] = n
	}
	for cat, c := range ov.AccentColors {
		l.AccentColors[cat] = c
	}
	for k, c := range ov.DirectionColors {
		l.DirectionColors[k] = c
	}
	sensitivity.Infof("layout overrides applied from %s", path)
	return l, nil
}
