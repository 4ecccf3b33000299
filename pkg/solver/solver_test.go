package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewtonSquareRoot(t *testing.T) {
	result := Newton(
		func(x float64) float64 { return x*x - 2 },
		func(x float64) float64 { return 2 * x },
		Options{Guess: 1, Tolerance: 1e-12},
	)

	require.True(t, result.Converged)
	assert.InDelta(t, math.Sqrt2, result.Rate, 1e-12)
	assert.NoError(t, result.Err())
}

func TestNewtonZeroDerivative(t *testing.T) {
	result := Newton(
		func(x float64) float64 { return 5 },
		func(x float64) float64 { return 0 },
		Options{},
	)

	assert.False(t, result.Converged)
	assert.True(t, errors.Is(result.Err(), calcerr.ErrNonConvergence))
}

func TestNewtonExhaustsIterations(t *testing.T) {
	// x^2 + 1 has no real root; Newton wanders without settling.
	result := Newton(
		func(x float64) float64 { return x*x + 1 },
		func(x float64) float64 { return 2 * x },
		Options{Guess: 0.5, MaxIterations: 25},
	)

	assert.False(t, result.Converged)
	assert.Equal(t, 25, result.Iterations)
	assert.ErrorIs(t, result.Err(), calcerr.ErrNonConvergence)
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, 0.10, opts.Guess)
	assert.Equal(t, 1e-5, opts.Tolerance)
	assert.Equal(t, 100, opts.MaxIterations)

	// A tiny guess is kept, which is how a caller starts the solve at zero.
	assert.Equal(t, 1e-9, Options{Guess: 1e-9}.withDefaults().Guess)
	assert.Equal(t, -0.5, Options{Guess: -0.5}.withDefaults().Guess)
}

func TestNPV(t *testing.T) {
	flows := []float64{-1000, 500, 500, 500}

	assert.InDelta(t, 500.0, NPV(0, flows), 1e-9)
	assert.InDelta(t, 243.4259, NPV(0.10, flows), 1e-4)
}

func TestNPVDerivativeMatchesFiniteDifference(t *testing.T) {
	flows := []float64{-2500, 300, 900, 1200, 700}
	rate := 0.07
	h := 1e-6

	numeric := (NPV(rate+h, flows) - NPV(rate-h, flows)) / (2 * h)
	assert.InDelta(t, numeric, NPVDerivative(rate, flows), 1e-4)
}

func TestIRRTextbookCase(t *testing.T) {
	flows := []float64{-1000, 500, 500, 500}

	result, err := IRR(flows, Options{})
	require.NoError(t, err)
	require.True(t, result.Converged)

	assert.InDelta(t, 0.233752, result.Rate, 1e-5)
	assert.InDelta(t, 0.0, NPV(result.Rate, flows), 1e-2)
}

func TestIRRConsistency(t *testing.T) {
	cases := [][]float64{
		{-5000, 1200, 1400, 1600, 1800},
		{-100, 110},
		{-20000, 0, 0, 30000},
		{-1000, 400, 400, 400},
	}

	for _, flows := range cases {
		result, err := IRR(flows, Options{})
		require.NoError(t, err)
		require.True(t, result.Converged, "flows %v", flows)
		assert.InDelta(t, 0.0, NPV(result.Rate, flows), 1e-2, "flows %v", flows)
	}
}

func TestIRRNegativeRate(t *testing.T) {
	// Returning less than invested yields a negative but valid IRR.
	result, err := IRR([]float64{-1000, 300, 300, 300}, Options{})
	require.NoError(t, err)
	require.True(t, result.Converged)
	assert.Less(t, result.Rate, 0.0)
}

func TestIRRZeroRateIsConverged(t *testing.T) {
	result, err := IRR([]float64{-900, 300, 300, 300}, Options{})
	require.NoError(t, err)
	require.True(t, result.Converged)
	assert.InDelta(t, 0.0, result.Rate, 1e-5)
}

func TestIRRInvalidInputs(t *testing.T) {
	_, err := IRR([]float64{-100}, Options{})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = IRR([]float64{100, 200, 300}, Options{})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestIRRNonConvergenceIsReported(t *testing.T) {
	result, err := IRR([]float64{-1000, 500, 500, 500}, Options{MaxIterations: 1})
	require.NoError(t, err)
	assert.False(t, result.Converged)
	assert.ErrorIs(t, result.Err(), calcerr.ErrNonConvergence)
}
