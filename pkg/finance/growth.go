// Package finance projects the growth of lumpsum, recurring and step-up
// contribution streams and provides the related interest, CAGR, goal and
// ROI calculations. Growth compounds monthly and contributions are made at
// the start of each month.
package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// InvestmentInput describes a contribution plan. Any combination of a
// lumpsum and a monthly contribution may be given; a non-zero StepUpPercent
// raises the monthly contribution at every year boundary.
type InvestmentInput struct {
	Lumpsum              float64
	MonthlyContribution  float64
	StepUpPercent        float64
	AnnualRatePercent    float64
	Years                float64
	InflationRatePercent float64
	TaxRatePercent       float64
}

// InvestmentResult is the projected outcome of an InvestmentInput.
// RealValue and AfterTaxValue equal FutureValue when no inflation or tax
// rate is given.
type InvestmentResult struct {
	TotalContributed float64 `json:"totalContributed"`
	FutureValue      float64 `json:"futureValue"`
	TotalGrowth      float64 `json:"totalGrowth"`
	CAGR             float64 `json:"cagr"`
	RealValue        float64 `json:"realValue"`
	AfterTaxValue    float64 `json:"afterTaxValue"`
}

// InvestmentState tracks the running value of a simulated account.
type InvestmentState struct {
	CurrentValue float64
	Contributed  float64
}

// Step adds the month's contribution and then applies one month of growth,
// returning the growth earned.
func (s *InvestmentState) Step(contribution, monthlyRate float64) float64 {
	s.CurrentValue += contribution
	s.Contributed += contribution
	growth := s.CurrentValue * monthlyRate
	s.CurrentValue += growth
	return growth
}

// LumpsumFutureValue compounds principal monthly for the given years.
func LumpsumFutureValue(principal, annualRatePercent, years float64) float64 {
	r := mathutil.MonthlyRate(annualRatePercent)
	n := mathutil.TotalPeriods(years, constants.MonthsPerYear)
	return principal * math.Pow(1+r, float64(n))
}

// RecurringFutureValue is the value of a level monthly contribution made at
// the start of each month. A zero rate returns the sum of contributions.
func RecurringFutureValue(contribution, annualRatePercent, years float64) float64 {
	n := mathutil.TotalPeriods(years, constants.MonthsPerYear)
	return contribution * recurringFactor(mathutil.MonthlyRate(annualRatePercent), n)
}

// recurringFactor is the future value of one unit contributed at the start
// of each of n periods.
func recurringFactor(r float64, n int) float64 {
	if r == 0 {
		return float64(n)
	}
	return (math.Pow(1+r, float64(n)) - 1) / r * (1 + r)
}

// StepUpFutureValue simulates a monthly contribution that grows by
// stepUpPercent at every year boundary. It returns the future value and the
// total contributed.
func StepUpFutureValue(contribution, stepUpPercent, annualRatePercent, years float64) (float64, float64) {
	r := mathutil.MonthlyRate(annualRatePercent)
	n := mathutil.TotalPeriods(years, constants.MonthsPerYear)
	step := 1 + mathutil.PercentToDecimal(stepUpPercent)

	var state InvestmentState
	current := contribution
	for month := 0; month < n; month++ {
		if month > 0 && month%constants.MonthsPerYear == 0 {
			current *= step
		}
		state.Step(current, r)
	}
	return state.CurrentValue, state.Contributed
}

// RealValue discounts a nominal value by inflation over the given years.
func RealValue(nominal, inflationRatePercent, years float64) float64 {
	if inflationRatePercent == 0 || years == 0 {
		return nominal
	}
	return nominal / math.Pow(1+mathutil.PercentToDecimal(inflationRatePercent), years)
}

// AfterTaxValue taxes only the growth above what was contributed. Losses are
// not taxed.
func AfterTaxValue(futureValue, contributed, taxRatePercent float64) float64 {
	growth := futureValue - contributed
	if growth <= 0 || taxRatePercent == 0 {
		return futureValue
	}
	return futureValue - mathutil.ApplyPercentage(growth, taxRatePercent)
}

// CAGR is the compound annual growth rate, as a decimal, that turns start
// into end over years. It returns 0 when start or years is not positive.
func CAGR(start, end, years float64) float64 {
	if start <= 0 || years <= 0 || end < 0 {
		return 0
	}
	return math.Pow(end/start, 1/years) - 1
}

// Projector runs growth projections.
type Projector struct {
	logger *zap.Logger
}

// NewProjector creates a projector. A nil logger disables logging.
func NewProjector(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{logger: logger}
}

// Project computes an InvestmentResult without logging.
func Project(in InvestmentInput) (InvestmentResult, error) {
	return NewProjector(nil).Project(in)
}

// Project computes the lumpsum and contribution components independently and
// sums them.
func (p *Projector) Project(in InvestmentInput) (InvestmentResult, error) {
	if err := validateInvestmentInput(in); err != nil {
		return InvestmentResult{}, err
	}

	result := project(in)

	p.logger.Debug("projected investment",
		zap.String("op", "finance.Project"),
		zap.Float64("years", in.Years),
		zap.Float64("future_value", result.FutureValue),
		zap.Bool("step_up", in.StepUpPercent != 0),
	)
	return result, nil
}

func project(in InvestmentInput) InvestmentResult {
	fv := LumpsumFutureValue(in.Lumpsum, in.AnnualRatePercent, in.Years)
	contributed := in.Lumpsum

	if in.MonthlyContribution > 0 {
		if in.StepUpPercent != 0 {
			value, paid := StepUpFutureValue(in.MonthlyContribution, in.StepUpPercent, in.AnnualRatePercent, in.Years)
			fv += value
			contributed += paid
		} else {
			fv += RecurringFutureValue(in.MonthlyContribution, in.AnnualRatePercent, in.Years)
			contributed += in.MonthlyContribution * float64(mathutil.TotalPeriods(in.Years, constants.MonthsPerYear))
		}
	}

	return InvestmentResult{
		TotalContributed: contributed,
		FutureValue:      fv,
		TotalGrowth:      fv - contributed,
		CAGR:             CAGR(contributed, fv, in.Years),
		RealValue:        RealValue(fv, in.InflationRatePercent, in.Years),
		AfterTaxValue:    AfterTaxValue(fv, contributed, in.TaxRatePercent),
	}
}

func validateInvestmentInput(in InvestmentInput) error {
	for name, value := range map[string]float64{
		"lumpsum":              in.Lumpsum,
		"monthly contribution": in.MonthlyContribution,
		"years":                in.Years,
	} {
		if value < 0 {
			return calcerr.Invalid("%s must not be negative, got %.2f", name, value)
		}
		if !mathutil.IsFinite(value) {
			return calcerr.Invalid("%s must be a finite number", name)
		}
	}
	if in.Years > constants.MaxTermMonths/constants.MonthsPerYear {
		return calcerr.Invalid("years %.1f exceeds the supported horizon", in.Years)
	}
	if mathutil.MonthlyRate(in.AnnualRatePercent) <= -1 {
		return calcerr.Invalid("annual rate %.2f%% is below -100%% per month", in.AnnualRatePercent)
	}
	if in.StepUpPercent <= -constants.PercentageMultiplier {
		return calcerr.Invalid("step-up %.2f%% would stop all contributions", in.StepUpPercent)
	}
	if in.InflationRatePercent <= -constants.PercentageMultiplier {
		return calcerr.Invalid("inflation rate must be greater than -100%%, got %.2f", in.InflationRatePercent)
	}
	if in.TaxRatePercent < 0 || in.TaxRatePercent > constants.PercentageMultiplier {
		return fmt.Errorf("tax rate: %w", calcerr.Invalid("%.2f%% is outside 0-100%%", in.TaxRatePercent))
	}
	return nil
}
