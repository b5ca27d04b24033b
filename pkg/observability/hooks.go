// Package observability lets callers observe sweeps, cache traffic and
// coordinate downloads without this module depending on a metrics backend.
//
// Each event category is an interface with a no-op implementation. Libraries
// call the registered hooks; main (or a test) registers real ones:
//
//	observability.SetSweepHooks(myProgressBar)
//	observability.SetCacheHooks(myCounters)
//
// The sweep runner also accepts hooks directly on sweep.Runner, which takes
// precedence over the global registration.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/foilsweep/pkg/polar"
)

// SweepHooks receives events from the polar sweep runner.
type SweepHooks interface {
	// OnSweepStart is called once before any solver run, with the number of
	// Reynolds numbers requested.
	OnSweepStart(ctx context.Context, airfoil string, total int)

	// OnRunComplete is called after each Reynolds number finishes, whatever
	// its outcome. done counts finished runs including this one. Calls may
	// arrive from several goroutines when the sweep is parallel.
	OnRunComplete(ctx context.Context, done, total int, entry polar.Entry)

	// OnSweepComplete is called once after every run has finished or been
	// skipped.
	OnSweepComplete(ctx context.Context, airfoil string, ds *polar.Dataset, duration time.Duration)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit. keyType is "curve" or "coords".
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from coordinate database downloads.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopSweepHooks ignores all sweep events.
type NoopSweepHooks struct{}

func (NoopSweepHooks) OnSweepStart(context.Context, string, int)                              {}
func (NoopSweepHooks) OnRunComplete(context.Context, int, int, polar.Entry)                   {}
func (NoopSweepHooks) OnSweepComplete(context.Context, string, *polar.Dataset, time.Duration) {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu    sync.RWMutex
	sweepHooks SweepHooks = NoopSweepHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
)

// SetSweepHooks registers sweep hooks. nil is ignored.
func SetSweepHooks(h SweepHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sweepHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Sweep returns the registered sweep hooks.
func Sweep() SweepHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sweepHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sweepHooks = NoopSweepHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
