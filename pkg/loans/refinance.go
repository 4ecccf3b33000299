package loans

import (
	"time"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
)

// RefinanceInput compares keeping the current loan against replacing it.
type RefinanceInput struct {
	CurrentBalance      float64
	CurrentRatePercent  float64
	RemainingMonths     int
	NewRatePercent      float64
	NewTermMonths       int
	ClosingCosts        float64
	FinanceClosingCosts bool
	StartDate           time.Time
}

// RefinanceResult summarizes both paths. BreakEvenMonths is
// metrics.NeverBreaksEven when the new payment is not lower.
type RefinanceResult struct {
	CurrentPayment           float64 `json:"currentPayment"`
	NewPayment               float64 `json:"newPayment"`
	MonthlySavings           float64 `json:"monthlySavings"`
	BreakEvenMonths          float64 `json:"breakEvenMonths"`
	CurrentRemainingInterest float64 `json:"currentRemainingInterest"`
	NewTotalInterest         float64 `json:"newTotalInterest"`
	CurrentRemainingCost     float64 `json:"currentRemainingCost"`
	NewTotalCost             float64 `json:"newTotalCost"`
	LifetimeSavings          float64 `json:"lifetimeSavings"`
	NewLoan                  Result  `json:"newLoan"`
}

// CalculateRefinance amortizes the remaining current loan and the proposed
// loan and derives the monthly and lifetime differences. A current loan with
// no remaining months is treated as due in full today.
func CalculateRefinance(in RefinanceInput) (RefinanceResult, error) {
	if in.CurrentBalance < 0 {
		return RefinanceResult{}, calcerr.Invalid("current balance must not be negative, got %.2f", in.CurrentBalance)
	}
	if in.RemainingMonths < 0 {
		return RefinanceResult{}, calcerr.Invalid("remaining months must not be negative, got %d", in.RemainingMonths)
	}
	if in.ClosingCosts < 0 {
		return RefinanceResult{}, calcerr.Invalid("closing costs must not be negative, got %.2f", in.ClosingCosts)
	}

	var result RefinanceResult
	if in.RemainingMonths == 0 {
		result.CurrentRemainingCost = in.CurrentBalance
	} else {
		current, err := Amortize(LoanInput{
			Principal:         in.CurrentBalance,
			AnnualRatePercent: in.CurrentRatePercent,
			TermMonths:        in.RemainingMonths,
			StartDate:         in.StartDate,
		})
		if err != nil {
			return RefinanceResult{}, err
		}
		result.CurrentPayment = current.Payment
		result.CurrentRemainingInterest = current.TotalInterest
		result.CurrentRemainingCost = current.TotalPaid
	}

	newPrincipal := in.CurrentBalance
	cashAtClosing := in.ClosingCosts
	if in.FinanceClosingCosts {
		newPrincipal += in.ClosingCosts
		cashAtClosing = 0
	}

	proposed, err := Amortize(LoanInput{
		Principal:         newPrincipal,
		AnnualRatePercent: in.NewRatePercent,
		TermMonths:        in.NewTermMonths,
		StartDate:         in.StartDate,
	})
	if err != nil {
		return RefinanceResult{}, err
	}

	result.NewPayment = proposed.Payment
	result.NewTotalInterest = proposed.TotalInterest
	result.NewTotalCost = proposed.TotalPaid + cashAtClosing
	result.MonthlySavings = result.CurrentPayment - result.NewPayment
	result.BreakEvenMonths = metrics.RefinanceBreakEvenMonths(in.ClosingCosts, result.MonthlySavings)
	result.LifetimeSavings = result.CurrentRemainingCost - result.NewTotalCost
	result.NewLoan = proposed
	return result, nil
}
