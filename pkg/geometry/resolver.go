package geometry

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/foilsweep/pkg/errors"
)

// Provider resolves an airfoil name into coordinates.
type Provider interface {
	// Name returns the provider identifier (e.g., "naca", "catalog").
	Name() string
	// Lookup returns the coordinates for key. ok is false when the provider
	// does not recognise the key; err is reserved for genuine failures.
	Lookup(ctx context.Context, key string) (pts []Point, ok bool, err error)
}

// FileReader reads coordinates from an explicit file path.
// name is the header line of the file, or empty if the file has none.
type FileReader interface {
	ReadCoordinates(ctx context.Context, path string) (name string, pts []Point, err error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ID string
	Fn func(ctx context.Context, key string) ([]Point, bool, error)
}

// Name returns the provider identifier.
func (p ProviderFunc) Name() string { return p.ID }

// Lookup calls Fn.
func (p ProviderFunc) Lookup(ctx context.Context, key string) ([]Point, bool, error) {
	return p.Fn(ctx, key)
}

// Resolver turns a name or file path into a coordinate sequence.
// Providers are consulted in order; the first hit wins.
type Resolver struct {
	File      FileReader
	Providers []Provider
	Logger    *log.Logger
}

// Resolution is the outcome of a successful [Resolver.Resolve].
type Resolution struct {
	Name     string  // Header name from a file, or the requested name
	Source   string  // "file" or the winning provider's Name
	Points   []Point // Resolved boundary walk
	FilePath string  // Path read, when Source is "file"
}

// Resolve returns coordinates for name, or for path when path is non-empty.
//
// A non-empty path is authoritative: providers are never consulted and read
// or parse failures are returned as-is. Otherwise each provider is tried in
// order and a GEOMETRY_NOT_FOUND error is returned when all of them decline.
// Providers vet the name themselves; only an empty name is rejected here.
func (r *Resolver) Resolve(ctx context.Context, name, path string) (*Resolution, error) {
	logger := r.logger()

	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		if r.File == nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "no coordinate file reader configured")
		}
		header, pts, err := r.File.ReadCoordinates(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(pts) == 0 {
			return nil, errors.New(errors.ErrCodeCoordinateParse, "%s: no coordinates", path)
		}
		logger.Debug("resolved coordinates from file", "path", path, "points", len(pts))
		return &Resolution{Name: header, Source: "file", Points: pts, FilePath: path}, nil
	}

	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrCodeInvalidName, "airfoil name cannot be empty")
	}

	tried := make([]string, 0, len(r.Providers))
	for _, p := range r.Providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tried = append(tried, p.Name())
		pts, ok, err := p.Lookup(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok || len(pts) == 0 {
			logger.Debug("provider declined", "provider", p.Name(), "name", name)
			continue
		}
		logger.Debug("resolved coordinates", "provider", p.Name(), "name", name, "points", len(pts))
		return &Resolution{Name: name, Source: p.Name(), Points: pts}, nil
	}

	return nil, errors.GeometryNotFound(name, tried)
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// New constructs an airfoil by name or path using r.
//
// When path is set and name is empty, the file's header line names the
// airfoil; failing that, the file stem is used. Construction never returns a
// partially initialised value: on error the *Airfoil is nil.
func New(ctx context.Context, r *Resolver, name, path string) (*Airfoil, error) {
	if name == "" && path == "" {
		name = DefaultName
	}
	res, err := r.Resolve(ctx, name, path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = res.Name
	}
	if name == "" && res.FilePath != "" {
		base := filepath.Base(res.FilePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return NewAirfoil(name, res.Points)
}
