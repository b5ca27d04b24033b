package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/foilsweep/pkg/config"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/geometry/naca"
)

func providerNames(ps []geometry.Provider) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func TestDefaultProviders(t *testing.T) {
	cfg := config.Default()
	cfg.Database.CatalogDir = t.TempDir()

	ps, err := DefaultProviders(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := providerNames(ps); len(got) != 2 || got[0] != "naca" || got[1] != "catalog" {
		t.Errorf("providers = %v, want [naca catalog]", got)
	}

	cfg.Database.UIUC = true
	ps, err = DefaultProviders(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := providerNames(ps); len(got) != 3 || got[2] != "uiuc" {
		t.Errorf("providers = %v, want uiuc last", got)
	}

	cfg.Database.UIUCURL = "gopher://nowhere"
	if _, err := DefaultProviders(cfg, nil, nil); err == nil {
		t.Error("bad UIUC URL should fail")
	}
}

func TestNewResolver(t *testing.T) {
	dir := t.TempDir()
	clarky := "CLARK Y\n1.0 0.0\n0.5 0.08\n0.0 0.0\n0.5 -0.03\n1.0 0.0"
	if err := os.WriteFile(filepath.Join(dir, "clarky.dat"), []byte(clarky), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Database.CatalogDir = dir

	r, err := NewResolver(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tests := []struct {
		name, path, source string
	}{
		{"naca2412", "", "naca"},
		{"ClarkY", "", "catalog"},
		{"", filepath.Join(dir, "clarky.dat"), "file"},
	}
	for _, tt := range tests {
		res, err := r.Resolve(ctx, tt.name, tt.path)
		if err != nil {
			t.Fatalf("Resolve(%q, %q): %v", tt.name, tt.path, err)
		}
		if res.Source != tt.source {
			t.Errorf("Resolve(%q, %q).Source = %q, want %q", tt.name, tt.path, res.Source, tt.source)
		}
	}

	a, err := geometry.New(ctx, r, "", filepath.Join(dir, "clarky.dat"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Name() != "CLARK Y" {
		t.Errorf("name from header = %q", a.Name())
	}

	for _, name := range []string{"not-a-foil", "fx63/137", "clark..y"} {
		a, err := geometry.New(ctx, r, name, "")
		if !errors.Is(err, errors.ErrCodeGeometryNotFound) || a != nil {
			t.Errorf("New(%q) = %v, %v; want GEOMETRY_NOT_FOUND", name, a, err)
		}
	}
	if _, err := geometry.New(ctx, r, "", filepath.Join(dir, "missing.dat")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing path = %v, want FILE_NOT_FOUND", err)
	}
}

type countingProvider struct {
	calls int
}

func (p *countingProvider) Name() string { return "database" }

func (p *countingProvider) Lookup(context.Context, string) ([]geometry.Point, bool, error) {
	p.calls++
	return nil, false, nil
}

func TestParametricNamesSkipDatabase(t *testing.T) {
	for _, name := range []string{"naca0012", "naca2412", "NACA 23012", "naca-4415"} {
		t.Run(name, func(t *testing.T) {
			db := &countingProvider{}
			r := &geometry.Resolver{Providers: []geometry.Provider{naca.New(), db}}
			res, err := r.Resolve(context.Background(), name, "")
			if err != nil {
				t.Fatalf("Resolve(%q): %v", name, err)
			}
			if res.Source != "naca" {
				t.Errorf("Source = %q, want naca", res.Source)
			}
			if db.calls != 0 {
				t.Errorf("database consulted %d times, want 0", db.calls)
			}
		})
	}
}
