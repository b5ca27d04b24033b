package sweep

import (
	"math"

	"github.com/matzehuels/foilsweep/pkg/errors"
)

// Defaults for a sweep.
const (
	DefaultAlphaStart = 0.0
	DefaultAlphaEnd   = 10.0
	DefaultAlphaStep  = 0.25
	DefaultMaxIter    = 100
	DefaultMinPoints  = 20

	DefaultReynoldsMin   = 1e4
	DefaultReynoldsMax   = 1e6
	DefaultReynoldsCount = 12
)

// Options describes one sweep request.
type Options struct {
	AlphaStart float64   // First angle of attack in degrees
	AlphaEnd   float64   // Last angle of attack in degrees (inclusive when reached by whole steps)
	AlphaStep  float64   // Increment; non-zero, same sign as AlphaEnd-AlphaStart
	Reynolds   []float64 // Reynolds numbers in output order

	MaxIter   int // Solver iteration limit per angle
	MinPoints int // Recorded on the dataset for WellConverged; never enforced

	WorkDir     string // Scratch root; empty uses a temporary directory
	KeepWorkDir bool   // Keep a temporary scratch root after the sweep
	Concurrency int    // Parallel solver runs; 0 or 1 runs sequentially
	Refresh     bool   // Ignore cached curves
}

// DefaultOptions returns the default sweep: alpha 0 to 10 degrees in
// quarter-degree steps at twelve log-spaced Reynolds numbers between 1e4 and
// 1e6. Every call returns a fresh Reynolds slice.
func DefaultOptions() Options {
	return Options{
		AlphaStart: DefaultAlphaStart,
		AlphaEnd:   DefaultAlphaEnd,
		AlphaStep:  DefaultAlphaStep,
		Reynolds:   Geomspace(DefaultReynoldsMin, DefaultReynoldsMax, DefaultReynoldsCount),
		MaxIter:    DefaultMaxIter,
		MinPoints:  DefaultMinPoints,
	}
}

// Geomspace returns n numbers spaced evenly on a log scale from start to
// stop inclusive. start and stop must be positive.
func Geomspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	out[0] = start
	if n == 1 {
		return out
	}
	lo, hi := math.Log10(start), math.Log10(stop)
	step := (hi - lo) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}
	out[n-1] = stop
	return out
}

// Validate checks the options and returns an INVALID_SWEEP error describing
// the first problem found.
func (o Options) Validate() error {
	for _, v := range []float64{o.AlphaStart, o.AlphaEnd, o.AlphaStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidSweep, "alpha range must be finite")
		}
	}
	if o.AlphaStep == 0 {
		return errors.New(errors.ErrCodeInvalidSweep, "alpha step must be non-zero")
	}
	if span := o.AlphaEnd - o.AlphaStart; span != 0 && (span > 0) != (o.AlphaStep > 0) {
		return errors.New(errors.ErrCodeInvalidSweep,
			"alpha step %g does not move from %g toward %g", o.AlphaStep, o.AlphaStart, o.AlphaEnd)
	}
	if len(o.Reynolds) == 0 {
		return errors.New(errors.ErrCodeInvalidSweep, "at least one Reynolds number is required")
	}
	for _, re := range o.Reynolds {
		if !(re > 0) || math.IsInf(re, 0) {
			return errors.New(errors.ErrCodeInvalidSweep, "Reynolds number %g must be positive and finite", re)
		}
	}
	if o.MaxIter <= 0 {
		return errors.New(errors.ErrCodeInvalidSweep, "max iterations must be positive, got %d", o.MaxIter)
	}
	if o.MinPoints < 0 {
		return errors.New(errors.ErrCodeInvalidSweep, "min points must not be negative, got %d", o.MinPoints)
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidSweep, "concurrency must not be negative, got %d", o.Concurrency)
	}
	if o.WorkDir != "" {
		if err := errors.ValidatePath(o.WorkDir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSweep, err, "work directory")
		}
	}
	return nil
}

// AlphaCount returns the number of angles the alpha sequence visits.
func (o Options) AlphaCount() int {
	if o.AlphaStep == 0 {
		return 0
	}
	n := (o.AlphaEnd-o.AlphaStart)/o.AlphaStep + 1e-9
	if n < 0 {
		return 0
	}
	return int(math.Floor(n)) + 1
}
