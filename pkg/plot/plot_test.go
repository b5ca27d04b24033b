package plot

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/polar"
)

func testAirfoil(t *testing.T) *geometry.Airfoil {
	t.Helper()
	a, err := geometry.NewAirfoil("demo", []geometry.Point{
		{X: 1, Y: 0}, {X: 0.75, Y: 0.04}, {X: 0.5, Y: 0.06}, {X: 0.25, Y: 0.06}, {X: 0, Y: 0},
		{X: 0.25, Y: -0.04}, {X: 0.5, Y: -0.03}, {X: 0.75, Y: -0.015}, {X: 1, Y: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func testDataset() *polar.Dataset {
	curve := func(scale float64) polar.Curve {
		return polar.Curve{
			Alpha: []float64{0, 1, 2, 3},
			CL:    []float64{0.2 * scale, 0.3 * scale, 0.4 * scale, 0.5 * scale},
			CD:    []float64{0.010, 0.011, 0.012, 0.014},
			CM:    []float64{-0.05, -0.05, -0.051, -0.052},
		}
	}
	return &polar.Dataset{
		Airfoil: "demo",
		Entries: []polar.Entry{
			{Reynolds: 1e5, Status: polar.StatusConverged, Curve: curve(1)},
			{Reynolds: 2e5, Status: polar.StatusFailed, Reason: "diverged"},
			{Reynolds: 1e6, Status: polar.StatusConverged, Curve: curve(1.1)},
		},
	}
}

func TestGeometry(t *testing.T) {
	for _, opts := range []Options{{}, {Markers: true, NoFill: true, Title: "custom"}} {
		fig, err := Geometry(testAirfoil(t), opts)
		if err != nil {
			t.Fatalf("Geometry(%+v): %v", opts, err)
		}
		want := "demo Airfoil"
		if opts.Title != "" {
			want = opts.Title
		}
		if got := fig.Plots[0][0].Title.Text; got != want {
			t.Errorf("title = %q, want %q", got, want)
		}
		p := fig.Plots[0][0]
		xspan, yspan := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
		ratio := float64(fig.Width / fig.Height)
		if d := xspan/yspan - ratio; d > 1e-9 || d < -1e-9 {
			t.Errorf("axis spans %g x %g do not match aspect %g", xspan, yspan, ratio)
		}
	}
	if _, err := Geometry(nil, Options{}); err == nil {
		t.Error("Geometry(nil) should fail")
	}
}

func TestPolars(t *testing.T) {
	fig, err := Polars(testDataset(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Plots) != 2 || len(fig.Plots[0]) != 2 || len(fig.Plots[1]) != 2 {
		t.Fatalf("expected a 2x2 grid")
	}
	labels := []string{
		fig.Plots[0][0].Y.Label.Text, fig.Plots[0][1].Y.Label.Text,
		fig.Plots[1][0].Y.Label.Text, fig.Plots[1][1].Y.Label.Text,
	}
	want := []string{"CL", "CD", "CM", "CL/CD"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("panel %d label = %q, want %q", i, labels[i], want[i])
		}
	}
	if fig.Plots[0][0].Title.Text != "demo Polars" {
		t.Errorf("title = %q", fig.Plots[0][0].Title.Text)
	}

	empty := &polar.Dataset{Airfoil: "x", Entries: []polar.Entry{{Reynolds: 1e5, Status: polar.StatusFailed}}}
	if _, err := Polars(empty, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("dataset without converged entries = %v, want INVALID_INPUT", err)
	}
}

func TestSave(t *testing.T) {
	geo, err := Geometry(testAirfoil(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	pol, err := Polars(testDataset(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		prefix string
	}{
		{FormatPNG, "\x89PNG"},
		{FormatSVG, "<svg"},
		{FormatPDF, "%PDF"},
	}
	for _, tt := range tests {
		for name, fig := range map[string]*Figure{"geometry": geo, "polars": pol} {
			t.Run(name+"/"+tt.format, func(t *testing.T) {
				var buf bytes.Buffer
				if err := fig.Save(&buf, tt.format, 4*vg.Inch, 3*vg.Inch); err != nil {
					t.Fatalf("Save: %v", err)
				}
				head := buf.String()
				if len(head) > 512 {
					head = head[:512]
				}
				if !strings.Contains(head, tt.prefix) {
					t.Errorf("output header does not contain %q", tt.prefix)
				}
			})
		}
	}

	var buf bytes.Buffer
	if err := geo.Save(&buf, "bmp", 0, 0); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Save(bmp) = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path, want string
		wantErr    bool
	}{
		{"out.png", FormatPNG, false},
		{"dir/Polars.SVG", FormatSVG, false},
		{"report.pdf", FormatPDF, false},
		{"data.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}
