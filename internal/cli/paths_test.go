package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/foilsweep/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	cfg := config.Default()
	cfg.Cache.Dir = "/srv/foilsweep-cache"
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != cfg.Cache.Dir {
		t.Errorf("cacheDir() = %q, want configured %q", dir, cfg.Cache.Dir)
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"naca2412":        "naca2412",
		"NACA 2412":       "naca_2412",
		"Eppler E387 (!)": "eppler_e387_",
		"":                "airfoil",
		"  //  ":          "airfoil",
	}
	for in, want := range tests {
		if got := fileStem(in); got != want {
			t.Errorf("fileStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSolverKeyer(t *testing.T) {
	cfg := config.Default()
	plain := solverKeyer(cfg).CoordinatesKey("uiuc", "e387")

	cfg.Solver.Repanel = true
	paneled := solverKeyer(cfg).CoordinatesKey("uiuc", "e387")

	cfg.Solver.Binary = "/opt/xfoil-6.99/bin/xfoil699"
	other := solverKeyer(cfg).CoordinatesKey("uiuc", "e387")

	if plain == paneled || paneled == other || plain == other {
		t.Errorf("keys should differ per solver setup: %q %q %q", plain, paneled, other)
	}
	if !strings.HasPrefix(plain, "xfoil:") {
		t.Errorf("key %q should be scoped by binary name", plain)
	}
}
