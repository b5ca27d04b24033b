// Package catalog looks airfoils up by name in a local directory of .dat
// files, such as a mirror of the UIUC coordinate database.
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
)

// Catalog is a geometry.Provider backed by a directory.
type Catalog struct {
	dir string
}

// New returns a catalog rooted at dir. The directory need not exist; a
// missing directory simply declines every lookup.
func New(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string { return c.dir }

// Name returns the provider identifier.
func (c *Catalog) Name() string { return "catalog" }

// Lookup implements geometry.Provider. The trimmed key is tried as
// "<key>" and "<key>.dat"; failing that, a file whose name matches either
// form case-insensitively is used.
func (c *Catalog) Lookup(ctx context.Context, key string) ([]geometry.Point, bool, error) {
	if c.dir == "" {
		return nil, false, nil
	}
	name := strings.TrimSpace(key)
	if err := errors.ValidateAirfoilName(name); err != nil {
		return nil, false, nil
	}

	path, ok := c.find(name)
	if !ok {
		return nil, false, nil
	}
	f, err := datfile.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return f.Points, true, nil
}

func (c *Catalog) find(name string) (string, bool) {
	for _, candidate := range []string{name, name + ".dat"} {
		path := filepath.Join(c.dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(e.Name(), name) || strings.EqualFold(e.Name(), name+".dat") {
			return filepath.Join(c.dir, e.Name()), true
		}
	}
	return "", false
}

// Names lists the airfoil names available in the catalog, sorted.
func (c *Catalog) Names() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".dat"))
	}
	sort.Strings(names)
	return names, nil
}
