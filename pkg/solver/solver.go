// Package solver defines the boundary between the sweep runner and an
// external aerodynamic solver.
//
// A [Solver] receives one [Request] per Reynolds number and returns the polar
// curve it computed. Implementations own their scratch files, which live
// under Request.WorkDir; the caller guarantees that directory is exclusive to
// the request. See package xfoil for the subprocess-backed implementation.
package solver

import (
	"context"
	"fmt"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/polar"
)

// Request describes a single viscous polar run.
type Request struct {
	Name        string           // Airfoil label written into the coordinate file
	Coordinates []geometry.Point // Boundary walk in Selig order
	AlphaStart  float64          // First angle of attack in degrees
	AlphaEnd    float64          // Last angle of attack in degrees
	AlphaStep   float64          // Increment; sign matches AlphaEnd-AlphaStart
	Reynolds    float64          // Chord Reynolds number
	MaxIter     int              // Viscous iteration limit per angle
	WorkDir     string           // Exclusive scratch directory for this run
}

// Solver computes the polar for one request.
//
// An error means the run produced no usable curve. Implementations must
// honor ctx cancellation and should terminate any child process they start.
type Solver interface {
	Solve(ctx context.Context, req Request) (polar.Curve, error)
}

// Func adapts an ordinary function to the Solver interface.
type Func func(ctx context.Context, req Request) (polar.Curve, error)

// Solve calls f(ctx, req).
func (f Func) Solve(ctx context.Context, req Request) (polar.Curve, error) {
	return f(ctx, req)
}

// InvocationError reports a failed solver run at one Reynolds number.
type InvocationError struct {
	Reynolds float64
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("Re=%s: %v", polar.EngString(e.Reynolds), e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Code returns the SOLVER_INVOCATION error code.
func (e *InvocationError) Code() errors.Code { return errors.ErrCodeSolverInvocation }

// Invocation wraps err as a coded SOLVER_INVOCATION error for Reynolds
// number re. A nil err returns nil.
func Invocation(re float64, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeSolverInvocation, &InvocationError{Reynolds: re, Err: err}, "solver run failed")
}
