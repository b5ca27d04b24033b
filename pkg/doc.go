// Package pkg provides the libraries behind foilsweep.
//
// # Overview
//
// foilsweep turns an airfoil name or coordinate file into a set of polars:
// lift, drag and moment coefficients against angle of attack, one curve per
// Reynolds number, computed by XFOIL.
//
//	name or .dat file
//	        ↓
//	   [geometry] resolver (file, NACA generator, catalog, UIUC database)
//	        ↓
//	   [sweep] runner (one [solver] call per Reynolds number, cached)
//	        ↓
//	   [polar] dataset → JSON / CSV, [plot] → PNG / SVG / PDF
//
// # Quick Start
//
//	cfg, _ := config.Load("")
//	c := cache.NewNullCache()
//
//	r, _ := source.NewResolver(cfg, c, nil)
//	a, _ := geometry.New(ctx, r, "naca2412", "")
//
//	s := xfoil.New(xfoil.Options{})
//	runner := sweep.NewRunner(s, c, cache.NewDefaultKeyer(), nil)
//	ds, err := runner.Run(ctx, a, sweep.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if err := ds.Err(); err != nil {
//	    log.Warn("some runs failed", "err", err)
//	}
//
// # Main Packages
//
// [geometry] - Points, the Airfoil type, and the provider chain that maps a
// name to coordinates. Providers live in subpackages: [geometry/naca]
// generates 4- and 5-digit sections, [geometry/catalog] reads a local
// directory of .dat files, and [geometry/uiuc] downloads from the UIUC
// Airfoil Coordinates Database.
//
// [datfile] - Reading and writing Selig and Lednicer coordinate files.
//
// [solver] - The solver interface; [solver/xfoil] drives the XFOIL binary
// through a generated command script in an isolated work directory.
//
// [sweep] - Fans a sweep out across Reynolds numbers, sequentially or with
// bounded parallelism, isolating failures per run.
//
// [polar] - Curves, entries and datasets, with JSON and CSV export.
//
// [plot] - Geometry and polar figures with gonum/plot.
//
// ## Infrastructure
//
// [cache] - Curve and coordinate caching with file, Redis and null backends.
//
// [config] - TOML configuration and XDG directories.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for sweep progress, cache and HTTP events.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/geometry
// [geometry/naca]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/geometry/naca
// [geometry/catalog]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/geometry/catalog
// [geometry/uiuc]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/geometry/uiuc
// [datfile]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/datfile
// [solver]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/solver
// [solver/xfoil]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/solver/xfoil
// [sweep]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/sweep
// [polar]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/polar
// [plot]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/plot
// [cache]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/foilsweep/pkg/observability
package pkg
