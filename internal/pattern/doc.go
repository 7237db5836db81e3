/*
Package pattern converts images into crochet pattern charts.

# Overview

The pattern package provides the generation pipeline:
  - Palette lookup against a configurable yarn colour set
  - Symbol grid construction from a resized source image
  - Chart rendering with legend and reference image

# Pipeline

Generation runs in three stages (generator.go):

 1. The source image is resized to the requested column count with a
    row count derived from the image aspect ratio (grid.go)
 2. Each cell is classified into a stitch symbol using Sobel edge
    detection and a brightness threshold, and matched to the nearest
    palette colour (grid.go, palette.go)
 3. The grid is rendered as a PNG chart with a legend and a scaled
    copy of the original image (render.go)

# Symbols

  - 'x' marks an edge cell (Sobel magnitude above the edge threshold)
  - '+' marks a dark cell (brightness below the dark threshold)
  - 'o' marks everything else

# Palette

Palettes load from a YAML file with a colours map of name to hex
value. When no file is provided, a built-in sixteen colour set is
used. Colour matching minimizes squared Euclidean distance in RGB.

# Sizing

The estimated physical size of the finished piece is the grid
dimensions multiplied by the stitch width and height in centimeters.

# Example Usage

	gen := pattern.NewGenerator(nil)
	result, err := gen.Generate("cat.png", "cat_pattern.png", 50, 1.0, 1.0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%dx%d stitches, %.1fx%.1f cm\n",
		result.Cols, result.Rows, result.WidthCm, result.HeightCm)
*/
package pattern
