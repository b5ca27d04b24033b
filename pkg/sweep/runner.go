// Package sweep fans one airfoil out across a grid of Reynolds numbers,
// calling a [solver.Solver] once per Reynolds number and collecting the
// outcomes into an ordered [polar.Dataset].
//
// A failed run never aborts the sweep: it is recorded as a failed entry with
// its reason, and the remaining Reynolds numbers still run. Cancelling the
// context stops new runs; entries that never started are marked not_run.
//
// Every solver invocation gets its own scratch directory
//
//	<root>/<run id>/re-<index>-<Re>
//
// so concurrent sweeps, and parallel runs within a sweep, never share files.
package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/observability"
	"github.com/matzehuels/foilsweep/pkg/polar"
	"github.com/matzehuels/foilsweep/pkg/solver"
)

// Runner executes sweeps with caching.
//
// A Runner holds no per-sweep state; one Runner may serve several
// concurrent sweeps.
type Runner struct {
	Solver   solver.Solver
	SolverID string // Distinguishes solvers in cache keys (default "xfoil")
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Hooks    observability.SweepHooks // nil uses observability.Sweep()
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// or logger gets the default.
func NewRunner(s solver.Solver, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Solver:   s,
		SolverID: "xfoil",
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Run sweeps a across opts.Reynolds and attaches the result to a, replacing
// any previous polars.
//
// Invalid options and setup failures are returned before any solver run.
// Per-run failures are reported in the dataset, not as an error; use
// [polar.Dataset.Err] to collect them. If ctx is cancelled the partial
// dataset is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, a *geometry.Airfoil, opts Options) (*polar.Dataset, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sweep: nil airfoil")
	}
	if r.Solver == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sweep: no solver configured")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root, cleanup, err := workRoot(opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	runID := uuid.NewString()
	s := r.newSweep(opts, a, filepath.Join(root, runID))
	logger := s.logger
	if opts.WorkDir != "" || opts.KeepWorkDir {
		logger.Debug("scratch files kept", "dir", s.base)
	}
	total := len(opts.Reynolds)
	ds := &polar.Dataset{
		Airfoil:   a.Name(),
		MinPoints: opts.MinPoints,
		Entries:   make([]polar.Entry, total),
	}
	for i, re := range opts.Reynolds {
		ds.Entries[i] = polar.Entry{Reynolds: re, Status: polar.StatusNotRun}
	}

	hooks := r.hooks()
	start := time.Now()
	hooks.OnSweepStart(ctx, a.Name(), total)
	logger.Info("starting sweep", "airfoil", a.Name(), "reynolds", total,
		"alphas", opts.AlphaCount(), "jobs", max(opts.Concurrency, 1), "run", runID)

	var done atomic.Int32
	runAt := func(i int) {
		if ctx.Err() != nil {
			return
		}
		ds.Entries[i] = s.run(ctx, i)
		hooks.OnRunComplete(ctx, int(done.Add(1)), total, ds.Entries[i])
	}

	if opts.Concurrency <= 1 {
		for i := range opts.Reynolds {
			runAt(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Concurrency)
		for i := range opts.Reynolds {
			i := i
			g.Go(func() error {
				runAt(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	a.SetPolars(ds)
	elapsed := time.Since(start)
	hooks.OnSweepComplete(ctx, a.Name(), ds, elapsed)

	counts := ds.Counts()
	logger.Info("sweep finished", "airfoil", a.Name(),
		"converged", counts[polar.StatusConverged],
		"failed", counts[polar.StatusFailed],
		"not_run", counts[polar.StatusNotRun],
		"duration", elapsed.Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return ds, err
	}
	return ds, nil
}

func (r *Runner) newSweep(opts Options, a *geometry.Airfoil, base string) *sweep {
	s := &sweep{
		solver:   r.Solver,
		solverID: r.SolverID,
		cache:    r.Cache,
		keyer:    r.Keyer,
		logger:   r.Logger,
		opts:     opts,
		name:     a.Name(),
		coords:   a.Coordinates(),
		base:     base,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.geomHash = cache.Hash([]byte(datfile.Format(s.coords, "", false)))
	return s
}

func (r *Runner) hooks() observability.SweepHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Sweep()
}

// sweep is the per-call state shared by the runs of one Run.
type sweep struct {
	solver   solver.Solver
	solverID string
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger

	opts     Options
	name     string
	coords   []geometry.Point
	geomHash string
	base     string
}

// run performs the i-th Reynolds number. It writes nothing outside its own
// work directory and touches no shared state besides the cache.
func (s *sweep) run(ctx context.Context, i int) polar.Entry {
	re := s.opts.Reynolds[i]
	entry := polar.Entry{Reynolds: re}
	logger := s.logger.With("re", polar.EngString(re))

	key := s.keyer.CurveKey(s.geomHash, cache.CurveKeyOpts{
		Reynolds:   re,
		AlphaStart: s.opts.AlphaStart,
		AlphaEnd:   s.opts.AlphaEnd,
		AlphaStep:  s.opts.AlphaStep,
		MaxIter:    s.opts.MaxIter,
		Solver:     s.solverID,
	})
	if !s.opts.Refresh {
		if c, ok := s.cached(ctx, key); ok {
			entry.Status = polar.StatusConverged
			entry.Curve = c
			entry.Cached = true
			logger.Info("converged (cached)", "points", c.Len())
			return entry
		}
	}

	start := time.Now()
	curve, err := s.solver.Solve(ctx, solver.Request{
		Name:        s.name,
		Coordinates: s.coords,
		AlphaStart:  s.opts.AlphaStart,
		AlphaEnd:    s.opts.AlphaEnd,
		AlphaStep:   s.opts.AlphaStep,
		Reynolds:    re,
		MaxIter:     s.opts.MaxIter,
		WorkDir:     filepath.Join(s.base, invocationDir(i, re)),
	})
	entry.Duration = time.Since(start)
	if err == nil {
		err = curve.Validate()
	}

	if err != nil {
		if ctx.Err() != nil {
			entry.Status = polar.StatusNotRun
			entry.Reason = "interrupted: " + ctx.Err().Error()
			logger.Warn("run interrupted")
			return entry
		}
		entry.Status = polar.StatusFailed
		entry.Reason = err.Error()
		logger.Warn("run failed", "err", solver.Invocation(re, err))
		return entry
	}

	entry.Status = polar.StatusConverged
	entry.Curve = curve
	logger.Info("converged", "points", curve.Len(), "duration", entry.Duration.Round(time.Millisecond))

	if data, err := json.Marshal(curve); err == nil {
		if err := s.cache.Set(ctx, key, data, cache.TTLCurve); err != nil {
			logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "curve", len(data))
		}
	}
	return entry
}

func (s *sweep) cached(ctx context.Context, key string) (polar.Curve, bool) {
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "curve")
		return polar.Curve{}, false
	}
	var c polar.Curve
	if err := json.Unmarshal(data, &c); err != nil || c.Validate() != nil {
		observability.Cache().OnCacheMiss(ctx, "curve")
		return polar.Curve{}, false
	}
	observability.Cache().OnCacheHit(ctx, "curve")
	return c, true
}

// invocationDir names the scratch directory of the i-th run.
func invocationDir(i int, re float64) string {
	return fmt.Sprintf("re-%02d-%s", i, strconv.FormatFloat(re, 'f', 0, 64))
}

// workRoot returns the scratch root and a cleanup func. A temporary root is
// removed by cleanup unless KeepWorkDir is set; a caller-supplied root is
// never removed.
func workRoot(opts Options) (string, func(), error) {
	if opts.WorkDir != "" {
		if err := os.MkdirAll(opts.WorkDir, 0o755); err != nil {
			return "", nil, fmt.Errorf("create work dir: %w", err)
		}
		return opts.WorkDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "foilsweep-")
	if err != nil {
		return "", nil, fmt.Errorf("create temp work dir: %w", err)
	}
	if opts.KeepWorkDir {
		return dir, func() {}, nil
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
