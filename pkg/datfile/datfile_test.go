package datfile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
)

var diamond = []geometry.Point{
	{X: 1, Y: 0},
	{X: 0.5, Y: 0.06},
	{X: 0, Y: 0},
	{X: 0.5, Y: -0.04},
	{X: 1, Y: 0},
}

func TestFormatLineCounts(t *testing.T) {
	withName := Format(diamond, "diamond", true)
	lines := strings.Split(withName, "\n")
	if len(lines) != len(diamond)+1 {
		t.Fatalf("Format(includeName=true) produced %d lines, want %d", len(lines), len(diamond)+1)
	}
	if lines[0] != "diamond" {
		t.Errorf("first line = %q, want %q", lines[0], "diamond")
	}
	if lines[1] != "1.000000 0.000000" {
		t.Errorf("second line = %q", lines[1])
	}

	without := Format(diamond, "diamond", false)
	if n := len(strings.Split(without, "\n")); n != len(diamond) {
		t.Errorf("Format(includeName=false) produced %d lines, want %d", n, len(diamond))
	}
	if strings.HasSuffix(without, "\n") {
		t.Error("Format should not add a trailing newline")
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		points      []geometry.Point
		includeName bool
	}{
		{"with name", diamond, true},
		{"without name", diamond, false},
		{"three points", diamond[:3], true},
		{"negative and tiny", []geometry.Point{{X: 1, Y: -0.0012345}, {X: 0.0000004, Y: 0}, {X: 1, Y: 0.0012345}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := Format(tt.points, "naca2412", tt.includeName)
			f, err := Read(strings.NewReader(text))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if tt.includeName && f.Name != "naca2412" {
				t.Errorf("Name = %q, want %q", f.Name, "naca2412")
			}
			if !tt.includeName && f.Name != "" {
				t.Errorf("Name = %q, want empty", f.Name)
			}
			if len(f.Points) != len(tt.points) {
				t.Fatalf("got %d points, want %d", len(f.Points), len(tt.points))
			}
			for i, p := range tt.points {
				if math.Abs(f.Points[i].X-p.X) > 1e-6 || math.Abs(f.Points[i].Y-p.Y) > 1e-6 {
					t.Errorf("point %d = %+v, want %+v", i, f.Points[i], p)
				}
			}
		})
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	in := "\n  Clark Y  \n\n1.0 0.0\n\n0.0 0.0\n1.0 0.0\n\n"
	f, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if f.Name != "Clark Y" {
		t.Errorf("Name = %q, want %q", f.Name, "Clark Y")
	}
	if len(f.Points) != 3 {
		t.Errorf("got %d points, want 3", len(f.Points))
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"name only", "naca2412\n"},
		{"bad line after data", "name\n1.0 0.0\nfoo bar\n"},
		{"three columns", "1.0 0.0 0.0\n"},
		{"second header", "name\nother name\n1 0\n"},
		{"nan", "1.0 NaN\n"},
		{"malformed first row", "1.000000 0.00l260\n0.5 0.06\n0.0 0.0\n0.5 -0.04\n1.0 -0.001\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("Read() error = nil, want parse error")
			}
			if !errors.Is(err, errors.ErrCodeCoordinateParse) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeCoordinateParse)
			}
		})
	}
}

func TestReadLednicer(t *testing.T) {
	in := `LEDNICER TEST
3. 3.

0.0 0.0
0.5 0.05
1.0 0.0

0.0 0.0
0.5 -0.03
1.0 0.0
`
	f, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []geometry.Point{
		{X: 1, Y: 0}, {X: 0.5, Y: 0.05}, {X: 0, Y: 0}, {X: 0.5, Y: -0.03}, {X: 1, Y: 0},
	}
	if len(f.Points) != len(want) {
		t.Fatalf("got %d points, want %d: %+v", len(f.Points), len(want), f.Points)
	}
	for i := range want {
		if f.Points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, f.Points[i], want[i])
		}
	}
}

func TestWriteFileAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diamond.dat")

	text, err := WriteFile(path, diamond, "diamond", true)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != text {
		t.Error("file contents differ from returned text")
	}

	name, pts, err := Reader{}.ReadCoordinates(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadCoordinates() error = %v", err)
	}
	if name != "diamond" || len(pts) != len(diamond) {
		t.Errorf("ReadCoordinates() = %q, %d points", name, len(pts))
	}
}

func TestWriteFileEmptyPath(t *testing.T) {
	text, err := WriteFile("", diamond, "diamond", false)
	if err != nil {
		t.Fatalf("WriteFile(\"\") error = %v", err)
	}
	if text != Format(diamond, "diamond", false) {
		t.Error("WriteFile should return the formatted text")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.dat"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
