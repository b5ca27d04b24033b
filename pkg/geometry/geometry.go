package geometry

import (
	"fmt"

	"github.com/matzehuels/foilsweep/pkg/polar"
)

// DefaultName is used when an airfoil is constructed without a name.
const DefaultName = "Untitled"

// Point is a boundary coordinate in chord-fraction units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Airfoil is a named airfoil geometry with an optional polar annotation.
// The coordinate sequence is fixed at construction; accessors return copies.
type Airfoil struct {
	name   string
	coords []Point
	polars *polar.Dataset
}

// NewAirfoil wraps an already-resolved coordinate sequence.
// It returns an error when coords is empty.
func NewAirfoil(name string, coords []Point) (*Airfoil, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("airfoil %q: empty coordinate sequence", name)
	}
	if name == "" {
		name = DefaultName
	}
	return &Airfoil{name: name, coords: clonePoints(coords)}, nil
}

// Name returns the airfoil's label and lookup key.
func (a *Airfoil) Name() string { return a.name }

// Coordinates returns a copy of the ordered boundary points.
func (a *Airfoil) Coordinates() []Point { return clonePoints(a.coords) }

// Len returns the number of boundary points.
func (a *Airfoil) Len() int { return len(a.coords) }

// X returns the x components of every coordinate, in order.
func (a *Airfoil) X() []float64 {
	xs := make([]float64, len(a.coords))
	for i, p := range a.coords {
		xs[i] = p.X
	}
	return xs
}

// Y returns the y components of every coordinate, in order.
func (a *Airfoil) Y() []float64 {
	ys := make([]float64, len(a.coords))
	for i, p := range a.coords {
		ys[i] = p.Y
	}
	return ys
}

// Polars returns the dataset from the most recent sweep, or nil.
func (a *Airfoil) Polars() *polar.Dataset { return a.polars }

// SetPolars replaces the attached dataset. Earlier results are discarded.
func (a *Airfoil) SetPolars(ds *polar.Dataset) { a.polars = ds }

// String implements fmt.Stringer.
func (a *Airfoil) String() string { return "Airfoil " + a.name }

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
