package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/foilsweep/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foilsweep.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts := cfg.SweepOptions()
	if opts.AlphaStep != 0.25 || opts.MaxIter != 100 || opts.MinPoints != 20 || len(opts.Reynolds) != 12 {
		t.Errorf("unexpected default sweep options %+v", opts)
	}
	if cfg.Solver.Timeout.Duration != 5*time.Minute {
		t.Errorf("default timeout = %s", cfg.Solver.Timeout)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[sweep]
alpha_end = 8.0
alpha_step = 0.5
reynolds = [1e5, 2e5]
jobs = 4

[solver]
binary = "/opt/xfoil/bin/xfoil"
timeout = "90s"
repanel = true

[database]
catalog_dir = "/srv/airfoils"
uiuc = true

[cache]
backend = "none"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts := cfg.SweepOptions()
	if diff := cmp.Diff([]float64{1e5, 2e5}, opts.Reynolds); diff != "" {
		t.Errorf("reynolds mismatch (-want +got):\n%s", diff)
	}
	if opts.AlphaStart != 0 || opts.AlphaEnd != 8 || opts.AlphaStep != 0.5 || opts.Concurrency != 4 {
		t.Errorf("unexpected sweep options %+v", opts)
	}
	if opts.MaxIter != 100 {
		t.Errorf("unset max_iter should keep its default, got %d", opts.MaxIter)
	}
	if cfg.Solver.Binary != "/opt/xfoil/bin/xfoil" || cfg.Solver.Timeout.Duration != 90*time.Second || !cfg.Solver.Repanel {
		t.Errorf("unexpected solver config %+v", cfg.Solver)
	}
	if dir, _ := cfg.CatalogDir(); dir != "/srv/airfoils" {
		t.Errorf("CatalogDir = %q", dir)
	}
	if !cfg.Database.UIUC || cfg.Database.UIUCURL == "" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadKeepsDefaultReynolds(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[sweep]\nmax_iter = 200\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sweep.Reynolds) != 12 || cfg.Sweep.MaxIter != 200 {
		t.Errorf("got reynolds=%v max_iter=%d", cfg.Sweep.Reynolds, cfg.Sweep.MaxIter)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[sweep\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[sweep]\nalpha_stpe = 1.0\n", errors.ErrCodeInvalidInput},
		{"bad duration", "[solver]\ntimeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"invalid sweep", "[sweep]\nalpha_step = 0.0\n", errors.ErrCodeInvalidSweep},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(""); err != nil {
		t.Errorf("missing default config should not be an error: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[sweep]\njobs = 3\n")
	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sweep.Jobs != 3 {
		t.Errorf("jobs = %d, want 3", cfg.Sweep.Jobs)
	}
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := Default()
	if dir, _ := cfg.CacheDir(); dir != "/tmp/xdg-cache/foilsweep" {
		t.Errorf("CacheDir = %q", dir)
	}
	if dir, _ := cfg.CatalogDir(); dir != "/tmp/xdg-data/foilsweep/airfoils" {
		t.Errorf("CatalogDir = %q", dir)
	}
	cfg.Cache.Dir = "/var/cache/fs"
	if dir, _ := cfg.CacheDir(); dir != "/var/cache/fs" {
		t.Errorf("configured CacheDir = %q", dir)
	}
}
