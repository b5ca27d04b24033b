package plot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
)

// Geometry plots the airfoil outline with equal axis scaling.
func Geometry(a *geometry.Airfoil, opts Options) (*Figure, error) {
	if a == nil || a.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no airfoil to plot")
	}
	if opts.Width <= 0 {
		opts.Width = 8 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 3 * vg.Inch
	}

	pts := a.Coordinates()
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = a.Name() + " Airfoil"
	}
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"
	p.Add(plotter.NewGrid())

	if !opts.NoFill {
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, err
		}
		poly.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x40}
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = colorAt(0)
	line.Width = vg.Points(1)
	p.Add(line)

	if opts.Markers {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.2)
		sc.GlyphStyle.Color = colorAt(0)
		p.Add(sc)
	}

	equalAspect(p, xys, float64(opts.Width/opts.Height))
	return &Figure{Plots: [][]*plot.Plot{{p}}, Width: opts.Width, Height: opts.Height}, nil
}

// equalAspect sets axis ranges so one unit spans the same length on both
// axes, assuming the data area has roughly the given width/height ratio.
func equalAspect(p *plot.Plot, xys plotter.XYs, ratio float64) {
	xmin, xmax, ymin, ymax := plotter.XYRange(xys)
	const pad = 0.05
	xspan := (xmax - xmin) * (1 + 2*pad)
	yspan := (ymax - ymin) * (1 + 2*pad)
	if xspan/ratio > yspan {
		yspan = xspan / ratio
	} else {
		xspan = yspan * ratio
	}
	xc, yc := (xmin+xmax)/2, (ymin+ymax)/2
	p.X.Min, p.X.Max = xc-xspan/2, xc+xspan/2
	p.Y.Min, p.Y.Max = yc-yspan/2, yc+yspan/2
}
