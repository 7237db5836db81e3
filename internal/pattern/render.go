package pattern

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// cellSize is the pixel size of one stitch cell in the rendered chart
	cellSize = 14
	// legendWidth is the pixel width of the legend strip
	legendWidth = 200
	// panelGap separates the original image, the chart and the legend
	panelGap = 10
)

var legendLines = []string{
	"o = flat/light area",
	"+ = medium/shaded area",
	"x = edge/contour",
}

// RenderChart draws the stitch chart next to the original image with a
// legend strip and saves the composite as a PNG.
func RenderChart(grid *Grid, pal *Palette, original image.Image, outPath string) error {
	if grid == nil || grid.Rows == 0 || grid.Cols == 0 {
		return fmt.Errorf("grid is empty")
	}

	chart := renderGrid(grid, pal)
	chartW := chart.Bounds().Dx()
	chartH := chart.Bounds().Dy()

	// Original panel scaled to the chart height
	preview := imaging.Resize(original, 0, chartH, imaging.Lanczos)
	previewW := preview.Bounds().Dx()

	totalW := previewW + panelGap + chartW + panelGap + legendWidth
	canvas := imaging.New(totalW, chartH, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	canvas = imaging.Paste(canvas, preview, image.Pt(0, 0))
	canvas = imaging.Paste(canvas, chart, image.Pt(previewW+panelGap, 0))
	drawLegend(canvas, previewW+panelGap+chartW+panelGap, chartH)

	if err := imaging.Save(canvas, outPath); err != nil {
		return fmt.Errorf("failed to save pattern chart: %w", err)
	}

	return nil
}

// renderGrid draws each stitch symbol in its yarn colour on a white board
// with a faint cell grid
func renderGrid(grid *Grid, pal *Palette) *image.NRGBA {
	w := grid.Cols * cellSize
	h := grid.Rows * cellSize
	board := imaging.New(w, h, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	gridLine := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	for x := 0; x < w; x += cellSize {
		for y := 0; y < h; y++ {
			board.SetNRGBA(x, y, gridLine)
		}
	}
	for y := 0; y < h; y += cellSize {
		for x := 0; x < w; x++ {
			board.SetNRGBA(x, y, gridLine)
		}
	}

	face := basicfont.Face7x13
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			st := grid.At(r, c)
			drawer := &font.Drawer{
				Dst:  board,
				Src:  image.NewUniform(pal.Colour(st.Colour)),
				Face: face,
				Dot: fixed.P(
					c*cellSize+(cellSize-face.Advance)/2,
					r*cellSize+(cellSize+face.Ascent)/2,
				),
			}
			drawer.DrawString(string(st.Symbol))
		}
	}

	return board
}

// drawLegend writes the symbol legend into the right-hand strip
func drawLegend(canvas *image.NRGBA, x0, height int) {
	bg := color.NRGBA{R: 211, G: 211, B: 211, A: 255}
	for y := 0; y < height; y++ {
		for x := x0; x < canvas.Bounds().Dx(); x++ {
			canvas.SetNRGBA(x, y, bg)
		}
	}

	face := basicfont.Face7x13
	black := image.NewUniform(color.NRGBA{A: 255})
	for i, line := range legendLines {
		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  black,
			Face: face,
			Dot:  fixed.P(x0+8, 20+i*(face.Height+6)),
		}
		drawer.DrawString(line)
	}
}
