// Package source assembles the default coordinate resolution chain from a
// configuration: NACA generator, local catalog, and optionally the remote
// UIUC database, consulted in that order.
package source

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/config"
	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/geometry/catalog"
	"github.com/matzehuels/foilsweep/pkg/geometry/naca"
	"github.com/matzehuels/foilsweep/pkg/geometry/uiuc"
)

// DefaultProviders returns the provider chain described by cfg. c caches
// remote downloads and may be nil.
func DefaultProviders(cfg config.Config, c cache.Cache, logger *log.Logger) ([]geometry.Provider, error) {
	providers := []geometry.Provider{naca.New()}

	dir, err := cfg.CatalogDir()
	if err == nil {
		providers = append(providers, catalog.New(dir))
	} else if logger != nil {
		logger.Debug("local catalog disabled", "err", err)
	}

	if cfg.Database.UIUC {
		opts := []uiuc.Option{}
		if logger != nil {
			opts = append(opts, uiuc.WithLogger(logger))
		}
		client, err := uiuc.New(cfg.Database.UIUCURL, c, opts...)
		if err != nil {
			return nil, err
		}
		providers = append(providers, client)
	}
	return providers, nil
}

// NewResolver returns a resolver with the .dat file reader and the
// providers from [DefaultProviders].
func NewResolver(cfg config.Config, c cache.Cache, logger *log.Logger) (*geometry.Resolver, error) {
	providers, err := DefaultProviders(cfg, c, logger)
	if err != nil {
		return nil, err
	}
	return &geometry.Resolver{
		File:      datfile.Reader{},
		Providers: providers,
		Logger:    logger,
	}, nil
}
