package plot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/polar"
)

// panel describes one subplot of the polar grid.
type panel struct {
	ylabel string
	values func(polar.Curve) []float64
}

var panels = [2][2]panel{
	{
		{"CL", func(c polar.Curve) []float64 { return c.CL }},
		{"CD", func(c polar.Curve) []float64 { return c.CD }},
	},
	{
		{"CM", func(c polar.Curve) []float64 { return c.CM }},
		{"CL/CD", polar.Curve.LiftToDrag},
	},
}

// Polars plots the converged entries of ds on a 2×2 grid of CL, CD, CM and
// CL/CD against angle of attack. Each Reynolds number gets one line, and
// the lift panel carries a legend labelled in engineering notation.
func Polars(ds *polar.Dataset, opts Options) (*Figure, error) {
	if ds == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no polar dataset to plot")
	}
	converged := ds.Converged()
	if converged.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no converged polars to plot", ds.Airfoil)
	}
	if opts.Width <= 0 {
		opts.Width = 10 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 8 * vg.Inch
	}

	grid := make([][]*plot.Plot, 2)
	for i := range panels {
		grid[i] = make([]*plot.Plot, 2)
		for j, pn := range panels[i] {
			p := plot.New()
			p.X.Label.Text = "α (deg)"
			p.Y.Label.Text = pn.ylabel
			p.Add(plotter.NewGrid())

			for k, e := range converged.Entries {
				if e.Samples() == 0 {
					continue
				}
				line, err := plotter.NewLine(curveXYs(e.Curve.Alpha, pn.values(e.Curve)))
				if err != nil {
					return nil, err
				}
				line.Color = colorAt(k)
				line.Width = vg.Points(1)
				p.Add(line)
				if i == 0 && j == 0 {
					p.Legend.Add("Re = "+polar.EngString(e.Reynolds), line)
				}
			}
			grid[i][j] = p
		}
	}

	title := opts.Title
	if title == "" {
		title = ds.Airfoil + " Polars"
	}
	grid[0][0].Title.Text = title
	grid[0][0].Legend.Top = true
	grid[0][0].Legend.Left = true

	return &Figure{Plots: grid, Width: opts.Width, Height: opts.Height}, nil
}

func curveXYs(x, y []float64) plotter.XYs {
	n := min(len(x), len(y))
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	return xys
}
