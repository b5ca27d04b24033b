// Package geometry holds the airfoil object model and the coordinate
// resolution chain.
//
// An [Airfoil] owns a name and an ordered, closed boundary walk of
// chord-fraction points (trailing edge, upper surface, leading edge, lower
// surface, trailing edge). Airfoils are built by a [Resolver], which either
// reads an explicit coordinate file or walks an ordered list of [Provider]
// implementations until one of them recognises the name:
//
//	r := &geometry.Resolver{
//	    File:      datfile.Reader{},
//	    Providers: []geometry.Provider{naca.New(), catalog.New(dir)},
//	}
//	a, err := geometry.New(ctx, r, "naca2412", "")
//
// Providers report "not mine" with a false ok result rather than an error,
// so the fallback order is explicit and short-circuits on the first hit.
// Only genuine failures (unreadable catalog entries, network errors) are
// returned as errors.
package geometry
