// Package cache stores solver results and fetched coordinate files.
//
// A polar run at one Reynolds number can take seconds to minutes, so the
// sweep runner keys every converged curve by the geometry hash and the run
// parameters and stores it in a [Cache]. Three backends are provided:
//
//   - [FileCache]: JSON files under ~/.cache/foilsweep (CLI default)
//   - [RedisCache]: a shared cache for teams running sweeps on several hosts
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that callers never assemble key strings
// by hand.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLCurve is how long a converged polar curve stays cached. Solver
	// output for identical inputs does not change, so this is long.
	TTLCurve = 30 * 24 * time.Hour

	// TTLCoordinates is how long a downloaded coordinate file stays cached.
	TTLCoordinates = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Used for --no-cache and in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a cache miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
