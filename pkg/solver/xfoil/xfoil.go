// Package xfoil runs Mark Drela's XFOIL as a [solver.Solver].
//
// Each request is executed as a separate XFOIL process driven by a keystroke
// script on stdin. The process works inside Request.WorkDir, where it reads
// airfoil.dat and appends to polar.txt; both paths are relative so that
// XFOIL's fixed-length filename buffers are never exceeded.
//
// Requires the xfoil binary on PATH (or Options.Binary):
//
//	macOS:  brew install xfoil
//	Linux:  apt install xfoil
package xfoil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/polar"
	"github.com/matzehuels/foilsweep/pkg/solver"
)

// Scratch file names inside Request.WorkDir.
const (
	CoordinateFile = "airfoil.dat"
	PolarFile      = "polar.txt"
	LogFile        = "xfoil.log"
)

// DefaultBinary is the executable looked up on PATH.
const DefaultBinary = "xfoil"

// DefaultTimeout bounds a single run. XFOIL can spin forever on a bad
// section, so runs are never unbounded by default.
const DefaultTimeout = 5 * time.Minute

// ErrNoConvergence is returned when XFOIL exits cleanly but writes no
// converged operating points.
var ErrNoConvergence = stderrors.New("xfoil produced no converged points")

// Options configures a Solver.
type Options struct {
	Binary  string        // Executable name or path (default "xfoil")
	Timeout time.Duration // Per-run limit; 0 uses DefaultTimeout, <0 disables
	Repanel bool          // Run PANE after LOAD
	Logger  *log.Logger
}

// Solver runs XFOIL subprocesses.
type Solver struct {
	opts   Options
	logger *log.Logger
}

var _ solver.Solver = (*Solver)(nil)

// New creates a Solver. The binary is not looked up until [Solver.Check]
// or the first Solve.
func New(opts Options) *Solver {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Solver{opts: opts, logger: logger}
}

// Check verifies that the XFOIL binary can be found.
func (s *Solver) Check() error {
	_, err := s.binary()
	return err
}

func (s *Solver) binary() (string, error) {
	path, err := exec.LookPath(s.opts.Binary)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSolverMissing, err,
			"%s not found. Install with:\n  macOS:  brew install xfoil\n  Linux:  apt install xfoil", s.opts.Binary)
	}
	return path, nil
}

// Solve runs one viscous alpha sequence at req.Reynolds.
func (s *Solver) Solve(ctx context.Context, req solver.Request) (polar.Curve, error) {
	bin, err := s.binary()
	if err != nil {
		return polar.Curve{}, err
	}
	if req.WorkDir == "" {
		return polar.Curve{}, errors.New(errors.ErrCodeInvalidInput, "xfoil: work directory required")
	}
	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return polar.Curve{}, fmt.Errorf("create work dir: %w", err)
	}

	name := req.Name
	if name == "" {
		name = "foilsweep"
	}
	if _, err := datfile.WriteFile(filepath.Join(req.WorkDir, CoordinateFile), req.Coordinates, name, true); err != nil {
		return polar.Curve{}, err
	}
	polarPath := filepath.Join(req.WorkDir, PolarFile)
	if err := os.Remove(polarPath); err != nil && !os.IsNotExist(err) {
		return polar.Curve{}, fmt.Errorf("remove stale polar: %w", err)
	}

	runCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	script := Script(ScriptParams{
		CoordinateFile: CoordinateFile,
		PolarFile:      PolarFile,
		Reynolds:       req.Reynolds,
		MaxIter:        req.MaxIter,
		AlphaStart:     req.AlphaStart,
		AlphaEnd:       req.AlphaEnd,
		AlphaStep:      req.AlphaStep,
		Repanel:        s.opts.Repanel,
	})

	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(runCtx, bin)
	cmd.Dir = req.WorkDir
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	start := time.Now()
	s.logger.Debug("starting xfoil", "re", req.Reynolds, "dir", req.WorkDir)
	runErr := cmd.Run()
	_ = os.WriteFile(filepath.Join(req.WorkDir, LogFile), out.Bytes(), 0o644)

	switch {
	case ctx.Err() != nil:
		return polar.Curve{}, ctx.Err()
	case runCtx.Err() == context.DeadlineExceeded:
		return polar.Curve{}, errors.New(errors.ErrCodeTimeout, "xfoil timed out after %s", s.opts.Timeout)
	case runErr != nil:
		return polar.Curve{}, fmt.Errorf("xfoil: %v: %s", runErr, lastLine(errBuf.String()))
	}

	curve, err := ReadPolarFile(polarPath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return polar.Curve{}, ErrNoConvergence
		}
		return polar.Curve{}, err
	}
	if curve.Len() == 0 {
		return polar.Curve{}, ErrNoConvergence
	}
	s.logger.Debug("xfoil finished", "re", req.Reynolds, "points", curve.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	return curve, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
