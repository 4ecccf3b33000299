// Package solver finds rates that zero a function, primarily the net present
// value of a cash flow stream, using Newton-Raphson iteration.
package solver

import (
	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Options controls the iteration. Zero values fall back to the defaults in
// the constants package.
type Options struct {
	// Guess is the starting rate. Zero selects constants.DefaultSolverGuess,
	// so a solve that should start at zero needs a small non-zero guess
	// such as 1e-9.
	Guess         float64
	Tolerance     float64
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Guess == 0 {
		o.Guess = constants.DefaultSolverGuess
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultSolverTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultSolverMaxIterations
	}
	return o
}

// Result is the outcome of a solve. Rate is only meaningful when Converged is
// true; a failed solve keeps the last iterate for diagnostics.
type Result struct {
	Rate       float64
	Iterations int
	Converged  bool
}

// Err returns nil for a converged result and an ErrNonConvergence otherwise.
func (r Result) Err() error {
	if r.Converged {
		return nil
	}
	return calcerr.NonConvergent("no root within tolerance after %d iterations (last estimate %.6f)", r.Iterations, r.Rate)
}

// Newton iterates x = x - f(x)/df(x) from opts.Guess until successive
// estimates differ by less than opts.Tolerance. A zero derivative, a
// non-finite estimate, or exhausting MaxIterations ends the solve without
// convergence.
func Newton(f, df func(float64) float64, opts Options) Result {
	opts = opts.withDefaults()

	x := opts.Guess
	for i := 1; i <= opts.MaxIterations; i++ {
		slope := df(x)
		if slope == 0 || !mathutil.IsFinite(slope) {
			return Result{Rate: x, Iterations: i, Converged: false}
		}

		next := x - f(x)/slope
		if !mathutil.IsFinite(next) {
			return Result{Rate: x, Iterations: i, Converged: false}
		}

		if mathutil.WithinTolerance(next, x, opts.Tolerance) {
			return Result{Rate: next, Iterations: i, Converged: true}
		}
		x = next
	}

	return Result{Rate: x, Iterations: opts.MaxIterations, Converged: false}
}
