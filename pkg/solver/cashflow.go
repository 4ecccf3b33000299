package solver

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
)

// NPV discounts cashFlows at the periodic rate; cashFlows[0] is undiscounted.
func NPV(rate float64, cashFlows []float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		total += cf / math.Pow(1+rate, float64(i))
	}
	return total
}

// NPVDerivative is dNPV/drate = Σ -i·cf[i] / (1+rate)^(i+1).
func NPVDerivative(rate float64, cashFlows []float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		if i == 0 {
			continue
		}
		total += -float64(i) * cf / math.Pow(1+rate, float64(i+1))
	}
	return total
}

// IRR finds the periodic rate at which the NPV of cashFlows is zero. The
// returned Result reports whether the solve converged; a stream with fewer
// than two flows or without both an inflow and an outflow has no IRR and is
// rejected as invalid input.
func IRR(cashFlows []float64, opts Options) (Result, error) {
	if len(cashFlows) < 2 {
		return Result{}, calcerr.Invalid("irr needs at least two cash flows, got %d", len(cashFlows))
	}

	hasPositive, hasNegative := false, false
	for _, cf := range cashFlows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return Result{}, calcerr.Invalid("irr needs both positive and negative cash flows")
	}

	result := Newton(
		func(r float64) float64 { return NPV(r, cashFlows) },
		func(r float64) float64 { return NPVDerivative(r, cashFlows) },
		opts,
	)

	// A rate at or below -100% makes the discount factor undefined.
	if result.Converged && result.Rate <= -1 {
		result.Converged = false
	}
	return result, nil
}
