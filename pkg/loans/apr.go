package loans

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/solver"
)

const aprTolerance = 1e-10

// APRResult is the annual percentage rate implied by paying fees up front.
type APRResult struct {
	APRPercent  float64 `json:"aprPercent"`
	Payment     float64 `json:"payment"`
	NetProceeds float64 `json:"netProceeds"`
	TotalFees   float64 `json:"totalFees"`
	Iterations  int     `json:"iterations"`
}

// presentValue is the amount a level payment stream of n periods is worth at
// periodic rate r.
func presentValue(payment, r float64, n int) float64 {
	if r == 0 {
		return payment * float64(n)
	}
	return payment * (1 - math.Pow(1+r, -float64(n))) / r
}

func presentValueDerivative(payment, r float64, n int) float64 {
	nf := float64(n)
	if r == 0 {
		// Limit of the derivative as r -> 0.
		return -payment * nf * (nf + 1) / 2
	}
	discount := math.Pow(1+r, -nf)
	return payment * (nf*math.Pow(1+r, -nf-1)*r - (1 - discount)) / (r * r)
}

// SolveAPR finds the annual rate at which the note's monthly payment repays
// only the net proceeds (loan amount less fees). With no fees the APR equals
// the note rate.
func SolveAPR(loanAmount, fees, annualRatePercent float64, termMonths int) (APRResult, error) {
	if loanAmount <= 0 {
		return APRResult{}, calcerr.Invalid("loan amount must be positive, got %.2f", loanAmount)
	}
	if fees < 0 {
		return APRResult{}, calcerr.Invalid("fees must not be negative, got %.2f", fees)
	}
	if fees >= loanAmount {
		return APRResult{}, calcerr.Invalid("fees %.2f must be less than the loan amount %.2f", fees, loanAmount)
	}

	payment, err := CalculateMonthlyPayment(loanAmount, annualRatePercent, termMonths)
	if err != nil {
		return APRResult{}, err
	}

	result := APRResult{
		Payment:     payment,
		NetProceeds: loanAmount - fees,
		TotalFees:   fees,
	}
	if fees == 0 {
		result.APRPercent = annualRatePercent
		return result, nil
	}

	guess := mathutil.MonthlyRate(annualRatePercent)
	if guess <= 0 {
		guess = 0.001
	}

	solved := solver.Newton(
		func(r float64) float64 { return presentValue(payment, r, termMonths) - result.NetProceeds },
		func(r float64) float64 { return presentValueDerivative(payment, r, termMonths) },
		solver.Options{Guess: guess, Tolerance: aprTolerance},
	)
	result.Iterations = solved.Iterations
	if err := solved.Err(); err != nil {
		return result, err
	}

	result.APRPercent = solved.Rate * constants.MonthsPerYear * constants.PercentageMultiplier
	return result, nil
}
