// Package naca generates NACA 4- and 5-digit airfoil coordinates.
//
// Names are matched case-insensitively with an optional separator between
// the "naca" prefix and the digits ("naca2412", "NACA 2412", "naca-23012").
// Unsupported families (6-series, reflexed 5-digit mean lines) and cambered
// 4-digit codes without a camber position are declined so the resolution
// chain can fall through to the database providers.
package naca

import (
	"context"
	"math"
	"strings"

	"github.com/matzehuels/foilsweep/pkg/geometry"
)

// DefaultPointsPerSide is the number of cosine-spaced stations per surface.
const DefaultPointsPerSide = 200

// Generator is a parametric geometry.Provider for NACA sections.
type Generator struct {
	PointsPerSide int
}

// New returns a Generator with DefaultPointsPerSide.
func New() *Generator {
	return &Generator{PointsPerSide: DefaultPointsPerSide}
}

// Name returns the provider identifier.
func (g *Generator) Name() string { return "naca" }

// Lookup implements geometry.Provider.
func (g *Generator) Lookup(ctx context.Context, key string) ([]geometry.Point, bool, error) {
	digits, ok := parseName(key)
	if !ok {
		return nil, false, nil
	}
	line, ok := camberFor(digits)
	if !ok {
		return nil, false, nil
	}
	thickness := float64(digits[len(digits)-2]*10+digits[len(digits)-1]) * 0.01
	n := g.PointsPerSide
	if n < 2 {
		n = DefaultPointsPerSide
	}
	return generate(line, thickness, n), true, nil
}

// Code returns the canonical digit string for name ("naca 2412" -> "2412").
func Code(name string) (string, bool) {
	digits, ok := parseName(name)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String(), true
}

func parseName(name string) ([]int, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(s, "naca") {
		return nil, false
	}
	s = strings.TrimLeft(strings.TrimPrefix(s, "naca"), " -_")
	if len(s) != 4 && len(s) != 5 {
		return nil, false
	}
	digits := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		digits[i] = int(r - '0')
	}
	return digits, true
}

// camber is a mean line: y_c(x) and dy_c/dx(x).
type camber interface {
	at(x float64) (yc, slope float64)
}

func camberFor(d []int) (camber, bool) {
	if len(d) == 4 {
		m := float64(d[0]) * 0.01
		p := float64(d[1]) * 0.1
		switch {
		case m > 0 && p == 0:
			// Camber with no position, e.g. 2012.
			return nil, false
		case p == 0:
			p = 0.5
		}
		return fourDigit{m: m, p: p}, true
	}
	return fiveDigitLine(d)
}

type fourDigit struct{ m, p float64 }

func (c fourDigit) at(x float64) (float64, float64) {
	m, p := c.m, c.p
	if x <= p {
		return m / (p * p) * (2*p*x - x*x), 2 * m / (p * p) * (p - x)
	}
	q := (1 - p) * (1 - p)
	return m / q * ((1 - 2*p) + 2*p*x - x*x), 2 * m / q * (p - x)
}

// Standard (non-reflexed) 5-digit mean line constants for design CL 0.3,
// indexed by the second digit (max camber position P = 1..5).
var fiveDigitTable = [6]struct{ r, k1 float64 }{
	{},
	{0.0580, 361.400},
	{0.1260, 51.640},
	{0.2025, 15.957},
	{0.2900, 6.643},
	{0.3910, 3.230},
}

type fiveDigit struct{ r, k1 float64 }

func fiveDigitLine(d []int) (camber, bool) {
	l, p, s := d[0], d[1], d[2]
	if s != 0 || p < 1 || p > 5 {
		return nil, false
	}
	row := fiveDigitTable[p]
	designCL := float64(l) * 0.15
	return fiveDigit{r: row.r, k1: row.k1 * designCL / 0.3}, true
}

func (c fiveDigit) at(x float64) (float64, float64) {
	r, k1 := c.r, c.k1
	if x < r {
		return k1 / 6 * (x*x*x - 3*r*x*x + r*r*(3-r)*x),
			k1 / 6 * (3*x*x - 6*r*x + r*r*(3-r))
	}
	return k1 * r * r * r / 6 * (1 - x), -k1 * r * r * r / 6
}

// thicknessAt is the NACA half-thickness distribution with the original
// 0.1015 trailing-edge coefficient (finite TE thickness).
func thicknessAt(t, x float64) float64 {
	return 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
}

// cosspace returns n points in [0, 1] clustered at both ends.
func cosspace(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n-1)))
	}
	return out
}

// generate builds upper TE->LE then lower LE->TE, dropping the duplicate LE.
func generate(line camber, thickness float64, n int) []geometry.Point {
	xs := cosspace(n)
	upper := make([]geometry.Point, n)
	lower := make([]geometry.Point, n)
	for i, x := range xs {
		yt := thicknessAt(thickness, x)
		yc, slope := line.at(x)
		theta := math.Atan(slope)
		sin, cos := math.Sin(theta), math.Cos(theta)
		upper[i] = geometry.Point{X: x - yt*sin, Y: yc + yt*cos}
		lower[i] = geometry.Point{X: x + yt*sin, Y: yc - yt*cos}
	}

	out := make([]geometry.Point, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}
	return append(out, lower[1:]...)
}
