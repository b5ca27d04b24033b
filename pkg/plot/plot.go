// Package plot draws airfoil geometry and polar curves with gonum/plot.
//
// Both entry points return a [Figure], a grid of plots that can be written
// as PNG, SVG or PDF:
//
//	fig, err := plot.Polars(ds, plot.Options{})
//	...
//	err = fig.Save(f, "png", 10*vg.Inch, 8*vg.Inch)
package plot

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/foilsweep/pkg/errors"
)

// Output formats accepted by [Figure.Save].
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Options tweak the appearance of a figure. The zero value is usable.
type Options struct {
	Title   string // Overrides the default title
	Markers bool   // Geometry: mark every coordinate
	NoFill  bool   // Geometry: outline only
	Width   vg.Length
	Height  vg.Length
}

// Figure is a grid of plots drawn onto one canvas.
type Figure struct {
	Plots  [][]*plot.Plot
	Width  vg.Length
	Height vg.Length
}

// Save writes the figure to w. A zero width or height falls back to the
// figure's own size.
func (f *Figure) Save(w io.Writer, format string, width, height vg.Length) error {
	if width <= 0 {
		width = f.Width
	}
	if height <= 0 {
		height = f.Height
	}
	c, err := newCanvas(format, width, height)
	if err != nil {
		return err
	}

	rows := len(f.Plots)
	cols := 0
	for _, row := range f.Plots {
		cols = max(cols, len(row))
	}
	dc := draw.New(c)
	if rows == 1 && cols == 1 {
		f.Plots[0][0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows: rows, Cols: cols,
			PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
			PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
			PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
		}
		canvases := plot.Align(f.Plots, tiles, dc)
		for i, row := range f.Plots {
			for j, p := range row {
				if p != nil {
					p.Draw(canvases[i][j])
				}
			}
		}
	}

	_, err = c.WriteTo(w)
	return err
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case FormatPNG, FormatSVG, FormatPDF:
		return ext, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer image format from %q (use .png, .svg or .pdf)", path)
}

func newCanvas(format string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case FormatSVG:
		return vgsvg.New(w, h), nil
	case FormatPDF:
		return vgpdf.New(w, h), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", format)
}

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

func colorAt(i int) color.Color { return palette[i%len(palette)] }
