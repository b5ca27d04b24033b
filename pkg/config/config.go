// Package config loads foilsweep.toml.
//
// A config file supplies defaults for the CLI; flags given on the command
// line override it. Every key is optional:
//
//	[sweep]
//	alpha_start = 0.0
//	alpha_end   = 10.0
//	alpha_step  = 0.25
//	reynolds    = [1e5, 2e5, 5e5]
//	max_iter    = 100
//	min_points  = 20
//	jobs        = 4
//
//	[solver]
//	binary  = "xfoil"
//	timeout = "5m"
//	repanel = false
//
//	[database]
//	catalog_dir = "~/airfoils"
//	uiuc        = true
//
//	[cache]
//	backend = "file"   # file, redis or none
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry/uiuc"
	"github.com/matzehuels/foilsweep/pkg/solver/xfoil"
	"github.com/matzehuels/foilsweep/pkg/sweep"
)

// AppName names the XDG directories.
const AppName = "foilsweep"

// EnvConfig overrides the config file location.
const EnvConfig = "FOILSWEEP_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed config file.
type Config struct {
	Sweep    Sweep    `toml:"sweep"`
	Solver   Solver   `toml:"solver"`
	Database Database `toml:"database"`
	Cache    Cache    `toml:"cache"`
}

// Sweep holds defaults for sweep.Options.
type Sweep struct {
	AlphaStart  float64   `toml:"alpha_start"`
	AlphaEnd    float64   `toml:"alpha_end"`
	AlphaStep   float64   `toml:"alpha_step"`
	Reynolds    []float64 `toml:"reynolds"`
	MaxIter     int       `toml:"max_iter"`
	MinPoints   int       `toml:"min_points"`
	Jobs        int       `toml:"jobs"`
	WorkDir     string    `toml:"workdir"`
	KeepWorkDir bool      `toml:"keep_workdir"`
}

// Solver configures the XFOIL adapter.
type Solver struct {
	Binary  string   `toml:"binary"`
	Timeout Duration `toml:"timeout"`
	Repanel bool     `toml:"repanel"`
}

// Database configures the coordinate providers.
type Database struct {
	CatalogDir string `toml:"catalog_dir"`
	UIUC       bool   `toml:"uiuc"`
	UIUCURL    string `toml:"uiuc_url"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Duration decodes TOML strings such as "90s" or "5m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	o := sweep.DefaultOptions()
	return Config{
		Sweep: Sweep{
			AlphaStart: o.AlphaStart,
			AlphaEnd:   o.AlphaEnd,
			AlphaStep:  o.AlphaStep,
			Reynolds:   o.Reynolds,
			MaxIter:    o.MaxIter,
			MinPoints:  o.MinPoints,
			Jobs:       1,
		},
		Solver: Solver{
			Binary:  xfoil.DefaultBinary,
			Timeout: Duration{xfoil.DefaultTimeout},
		},
		Database: Database{
			UIUCURL: uiuc.DefaultBaseURL,
		},
		Cache: Cache{
			Backend: BackendFile,
			Prefix:  AppName + ":",
		},
	}
}

// Load reads the config file at path on top of [Default].
//
// An empty path falls back to $FOILSWEEP_CONFIG and then to
// $XDG_CONFIG_HOME/foilsweep/config.toml; a missing fallback file is not an
// error, but a missing explicit path is. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	// Decoding into a populated slice appends, so let the file replace the
	// default grid outright.
	cfg.Sweep.Reynolds = nil
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if !md.IsDefined("sweep", "reynolds") {
		cfg.Sweep.Reynolds = Default().Sweep.Reynolds
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be deferred to the components.
func (c Config) Validate() error {
	if err := c.SweepOptions().Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Database.UIUC {
		if err := errors.ValidateURL(c.Database.UIUCURL); err != nil {
			return err
		}
	}
	return nil
}

// SweepOptions converts the [sweep] section into sweep.Options.
func (c Config) SweepOptions() sweep.Options {
	return sweep.Options{
		AlphaStart:  c.Sweep.AlphaStart,
		AlphaEnd:    c.Sweep.AlphaEnd,
		AlphaStep:   c.Sweep.AlphaStep,
		Reynolds:    append([]float64(nil), c.Sweep.Reynolds...),
		MaxIter:     c.Sweep.MaxIter,
		MinPoints:   c.Sweep.MinPoints,
		WorkDir:     expandHome(c.Sweep.WorkDir),
		KeepWorkDir: c.Sweep.KeepWorkDir,
		Concurrency: c.Sweep.Jobs,
	}
}

// CatalogDir returns the local catalog directory: the configured one, or
// $XDG_DATA_HOME/foilsweep/airfoils.
func (c Config) CatalogDir() (string, error) {
	if c.Database.CatalogDir != "" {
		return expandHome(c.Database.CatalogDir), nil
	}
	return DataDir("airfoils")
}

// CacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/foilsweep.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return expandHome(c.Cache.Dir), nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DefaultPath returns $XDG_CONFIG_HOME/foilsweep/config.toml.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME/foilsweep joined with elem.
func DataDir(elem ...string) (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, elem...)...), nil
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
