package pattern

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Stitch symbols. Strong edges win over dark areas.
const (
	SymbolFlat = 'o' // flat/light area
	SymbolDark = '+' // medium/shaded area
	SymbolEdge = 'x' // edge/contour
)

const (
	// edgeThreshold is the minimum Sobel gradient magnitude for a cell to
	// count as a contour stitch
	edgeThreshold = 150
	// darkThreshold is the maximum luma for a cell to count as shaded
	darkThreshold = 100
)

// Stitch is one cell of the pattern chart
type Stitch struct {
	Symbol rune
	Colour string
}

// Grid is the stitch chart derived from an image: Rows x Cols cells, each
// holding a stitch symbol and the nearest yarn colour
type Grid struct {
	Rows  int
	Cols  int
	cells []Stitch
}

// At returns the stitch at the given row and column
func (g *Grid) At(row, col int) Stitch {
	return g.cells[row*g.Cols+col]
}

// EstimatedSize returns the physical pattern dimensions in centimeters for
// the given per-stitch size
func (g *Grid) EstimatedSize(stitchWidth, stitchHeight float64) (width, height float64) {
	return float64(g.Cols) * stitchWidth, float64(g.Rows) * stitchHeight
}

// BuildGrid downsamples the image to a cols-wide stitch grid (rows follow
// the aspect ratio), computes a Sobel edge map, and assigns each cell a
// stitch symbol and the nearest palette colour.
func BuildGrid(img image.Image, cols int, pal *Palette) (*Grid, error) {
	if cols < 2 {
		return nil, fmt.Errorf("cols must be at least 2, got %d", cols)
	}
	if pal == nil || pal.Len() == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	rows := int(float64(cols) * aspectRatio)
	if rows < 1 {
		rows = 1
	}

	// Nearest neighbor keeps the blocky per-stitch look
	small := imaging.Resize(img, cols, rows, imaging.NearestNeighbor)

	luma := lumaPlane(small)
	edges := sobel(luma, rows, cols)

	cells := make([]Stitch, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := small.PixOffset(c, r)
			pr, pg, pb := small.Pix[i], small.Pix[i+1], small.Pix[i+2]

			symbol := SymbolFlat
			if luma[r*cols+c] < darkThreshold {
				symbol = SymbolDark
			}
			if edges[r*cols+c] > edgeThreshold {
				symbol = SymbolEdge
			}

			cells[r*cols+c] = Stitch{
				Symbol: symbol,
				Colour: pal.Nearest(pr, pg, pb),
			}
		}
	}

	return &Grid{Rows: rows, Cols: cols, cells: cells}, nil
}

// lumaPlane computes per-pixel luma (ITU-R BT.601 weights)
func lumaPlane(img *image.NRGBA) []float64 {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	luma := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			r := float64(img.Pix[i])
			g := float64(img.Pix[i+1])
			b := float64(img.Pix[i+2])
			luma[y*w+x] = 0.299*r + 0.587*g + 0.114*b
		}
	}
	return luma
}

// sobel computes gradient magnitude with edge-replicated borders
func sobel(luma []float64, rows, cols int) []float64 {
	at := func(r, c int) float64 {
		if r < 0 {
			r = 0
		} else if r >= rows {
			r = rows - 1
		}
		if c < 0 {
			c = 0
		} else if c >= cols {
			c = cols - 1
		}
		return luma[r*cols+c]
	}

	out := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			gx := -at(r-1, c-1) + at(r-1, c+1) +
				-2*at(r, c-1) + 2*at(r, c+1) +
				-at(r+1, c-1) + at(r+1, c+1)
			gy := at(r-1, c-1) + 2*at(r-1, c) + at(r-1, c+1) -
				at(r+1, c-1) - 2*at(r+1, c) - at(r+1, c+1)
			out[r*cols+c] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return out
}
