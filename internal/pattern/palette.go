package pattern

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// paletteFile is the on-disk YAML shape:
//
//	colours:
//	  White: "#FFFFFF"
//	  Navy: "#000080"
type paletteFile struct {
	Colours map[string]string `yaml:"colours"`
}

type paletteEntry struct {
	name string
	hex  string
	r    uint8
	g    uint8
	b    uint8
}

// Palette maps yarn colour names to their RGB values
type Palette struct {
	entries []paletteEntry
}

// LoadPalette reads a yarn palette from a YAML file.
// Colour names are lowercased so lookups are case-insensitive.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse palette file: %w", err)
	}

	if len(pf.Colours) == 0 {
		return nil, fmt.Errorf("palette file %s defines no colours", path)
	}

	return newPalette(pf.Colours)
}

// DefaultPalette returns a built-in yarn palette used when no palette file
// is configured
func DefaultPalette() *Palette {
	p, err := newPalette(map[string]string{
		"white":  "#FFFFFF",
		"cream":  "#FFF5E1",
		"yellow": "#F5C518",
		"orange": "#E8751A",
		"red":    "#C0392B",
		"pink":   "#E91E8C",
		"purple": "#7D3C98",
		"navy":   "#1F3A93",
		"blue":   "#2E86C1",
		"teal":   "#17A589",
		"green":  "#239B56",
		"olive":  "#7D8C21",
		"brown":  "#6E4A2F",
		"beige":  "#D8C3A5",
		"grey":   "#808080",
		"black":  "#000000",
	})
	if err != nil {
		// The built-in table is static; a parse failure here is a programming error
		panic(err)
	}
	return p
}

func newPalette(colours map[string]string) (*Palette, error) {
	entries := make([]paletteEntry, 0, len(colours))
	for name, hex := range colours {
		r, g, b, err := parseHexColour(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", name, err)
		}
		entries = append(entries, paletteEntry{
			name: strings.ToLower(name),
			hex:  hex,
			r:    r,
			g:    g,
			b:    b,
		})
	}

	// Deterministic order regardless of map iteration
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	return &Palette{entries: entries}, nil
}

func parseHexColour(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected #RRGGBB, got %q", hex)
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("expected #RRGGBB, got %q", hex)
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}

// Len returns the number of colours in the palette
func (p *Palette) Len() int {
	return len(p.entries)
}

// Names returns all colour names in sorted order
func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.name
	}
	return names
}

// Nearest returns the name of the palette colour closest to the given RGB
// value by squared Euclidean distance
func (p *Palette) Nearest(r, g, b uint8) string {
	best := ""
	bestDist := int(^uint(0) >> 1)
	for _, e := range p.entries {
		dr := int(r) - int(e.r)
		dg := int(g) - int(e.g)
		db := int(b) - int(e.b)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = e.name
		}
	}
	return best
}

// Colour returns the RGBA value for a named palette colour.
// Unknown names render as black.
func (p *Palette) Colour(name string) color.NRGBA {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range p.entries {
		if e.name == name {
			return color.NRGBA{R: e.r, G: e.g, B: e.b, A: 255}
		}
	}
	return color.NRGBA{A: 255}
}
