package finance

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// GoalInput asks how much must be saved each month to reach Target.
type GoalInput struct {
	Target            float64
	CurrentSavings    float64
	AnnualRatePercent float64
	Years             float64
}

// GoalResult is the contribution needed to reach a savings goal.
type GoalResult struct {
	MonthlyContribution float64 `json:"monthlyContribution"`
	ProjectedSavings    float64 `json:"projectedSavings"`
	Shortfall           float64 `json:"shortfall"`
	TotalContributed    float64 `json:"totalContributed"`
}

// GoalContribution inverts the recurring contribution formula. When current
// savings alone grow past the target the contribution is 0.
func GoalContribution(in GoalInput) (GoalResult, error) {
	if in.Target < 0 || in.CurrentSavings < 0 {
		return GoalResult{}, calcerr.Invalid("target and current savings must not be negative")
	}
	if in.Years < 0 || !mathutil.IsFinite(in.Years) {
		return GoalResult{}, calcerr.Invalid("years must be a non-negative number, got %.2f", in.Years)
	}
	r := mathutil.MonthlyRate(in.AnnualRatePercent)
	if r <= -1 {
		return GoalResult{}, calcerr.Invalid("annual rate %.2f%% is below -100%% per month", in.AnnualRatePercent)
	}

	projected := LumpsumFutureValue(in.CurrentSavings, in.AnnualRatePercent, in.Years)
	result := GoalResult{ProjectedSavings: projected}
	if projected >= in.Target {
		return result, nil
	}

	result.Shortfall = in.Target - projected
	n := mathutil.TotalPeriods(in.Years, constants.MonthsPerYear)
	if n == 0 {
		return GoalResult{}, calcerr.Invalid("no months remain to close a shortfall of %.2f", result.Shortfall)
	}

	factor := recurringFactor(r, n)
	if factor <= 0 || math.IsInf(factor, 0) {
		return GoalResult{}, calcerr.Invalid("rate %.2f%% cannot reach the target", in.AnnualRatePercent)
	}
	result.MonthlyContribution = result.Shortfall / factor
	result.TotalContributed = result.MonthlyContribution * float64(n)
	return result, nil
}
