package pattern

import (
	"fmt"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultCols is the grid width used when the client sends no cols value
const DefaultCols = 50

// DefaultStitchSize is the per-stitch dimension (cm) used when the client
// sends no value
const DefaultStitchSize = 1.0

// Generator turns source images into stitch charts using a fixed palette
type Generator struct {
	palette *Palette
}

// NewGenerator creates a generator for the given palette.
// A nil palette falls back to the built-in one.
func NewGenerator(pal *Palette) *Generator {
	if pal == nil {
		pal = DefaultPalette()
	}
	return &Generator{palette: pal}
}

// Palette returns the generator's yarn palette
func (g *Generator) Palette() *Palette {
	return g.palette
}

// Result summarizes one generated pattern
type Result struct {
	Rows     int
	Cols     int
	WidthCm  float64
	HeightCm float64
}

// Generate loads the source image, builds its stitch grid and renders the
// chart PNG to outPath
func (g *Generator) Generate(srcPath, outPath string, cols int, stitchWidth, stitchHeight float64) (*Result, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	grid, err := BuildGrid(img, cols, g.palette)
	if err != nil {
		return nil, err
	}

	if err := RenderChart(grid, g.palette, img, outPath); err != nil {
		return nil, err
	}

	widthCm, heightCm := grid.EstimatedSize(stitchWidth, stitchHeight)
	return &Result{
		Rows:     grid.Rows,
		Cols:     grid.Cols,
		WidthCm:  widthCm,
		HeightCm: heightCm,
	}, nil
}

// ParseCols parses a cols form value, falling back to the default when the
// value is empty, not a number, or below the minimum grid width
func ParseCols(value string) int {
	if value == "" {
		return DefaultCols
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 2 {
		return DefaultCols
	}
	return n
}

// ParseStitchSize parses a stitch dimension form value, falling back to the
// default when the value is empty or not a number
func ParseStitchSize(value string) float64 {
	if value == "" {
		return DefaultStitchSize
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return DefaultStitchSize
	}
	return f
}
