// Package calcerr defines the failure conditions shared by the calculation
// engines. Callers distinguish them with errors.Is.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks inputs that have no meaningful answer, such as a
	// negative principal, a non-positive period count, or a down payment
	// larger than the purchase price.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonConvergence marks a root-finding problem that did not reach the
	// requested tolerance. It is never reported as a zero rate.
	ErrNonConvergence = errors.New("failed to converge")
)

// Invalid returns an error wrapping ErrInvalidInput with the formatted detail.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NonConvergent returns an error wrapping ErrNonConvergence with the formatted detail.
func NonConvergent(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNonConvergence, fmt.Sprintf(format, args...))
}

// Kind returns a short label for the error class, used for metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNonConvergence):
		return "non_convergence"
	default:
		return "error"
	}
}
