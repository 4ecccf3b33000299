package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
)

func TestCalculateRefinance(t *testing.T) {
	result, err := CalculateRefinance(RefinanceInput{
		CurrentBalance:     200000,
		CurrentRatePercent: 6.5,
		RemainingMonths:    300,
		NewRatePercent:     5,
		NewTermMonths:      360,
		ClosingCosts:       4000,
	})
	if err != nil {
		t.Fatalf("CalculateRefinance() error = %v", err)
	}

	if math.Abs(result.CurrentPayment-1350.41) > 0.005 {
		t.Errorf("CurrentPayment = %.4f, expected 1350.41", result.CurrentPayment)
	}
	if math.Abs(result.NewPayment-1073.64) > 0.005 {
		t.Errorf("NewPayment = %.4f, expected 1073.64", result.NewPayment)
	}
	if math.Abs(result.MonthlySavings-276.77) > 0.01 {
		t.Errorf("MonthlySavings = %.4f, expected 276.77", result.MonthlySavings)
	}
	if math.Abs(result.BreakEvenMonths-14.45) > 0.01 {
		t.Errorf("BreakEvenMonths = %.4f, expected 14.45", result.BreakEvenMonths)
	}
	if math.Abs(result.LifetimeSavings-(405124.30-390511.57)) > 0.05 {
		t.Errorf("LifetimeSavings = %.2f, expected about 14612.73", result.LifetimeSavings)
	}
}

func TestCalculateRefinanceNeverBreaksEven(t *testing.T) {
	result, err := CalculateRefinance(RefinanceInput{
		CurrentBalance:     150000,
		CurrentRatePercent: 4,
		RemainingMonths:    240,
		NewRatePercent:     7,
		NewTermMonths:      240,
		ClosingCosts:       3000,
	})
	if err != nil {
		t.Fatalf("CalculateRefinance() error = %v", err)
	}
	if result.BreakEvenMonths != metrics.NeverBreaksEven {
		t.Errorf("BreakEvenMonths = %.2f, expected %v", result.BreakEvenMonths, metrics.NeverBreaksEven)
	}
}

func TestCalculateRefinanceFinancedClosingCosts(t *testing.T) {
	result, err := CalculateRefinance(RefinanceInput{
		CurrentBalance:      100000,
		CurrentRatePercent:  7,
		RemainingMonths:     180,
		NewRatePercent:      5,
		NewTermMonths:       180,
		ClosingCosts:        2000,
		FinanceClosingCosts: true,
	})
	if err != nil {
		t.Fatalf("CalculateRefinance() error = %v", err)
	}
	if result.NewLoan.PrincipalFinanced != 102000 {
		t.Errorf("PrincipalFinanced = %.2f, expected 102000", result.NewLoan.PrincipalFinanced)
	}
	if math.Abs(result.NewTotalCost-result.NewLoan.TotalPaid) > 1e-9 {
		t.Errorf("financed closing costs must not be counted as cash")
	}
}

func TestCalculateRefinanceZeroRemainingMonths(t *testing.T) {
	result, err := CalculateRefinance(RefinanceInput{
		CurrentBalance: 10000,
		NewRatePercent: 5,
		NewTermMonths:  60,
	})
	if err != nil {
		t.Fatalf("CalculateRefinance() error = %v", err)
	}
	if result.CurrentPayment != 0 || result.CurrentRemainingCost != 10000 {
		t.Errorf("unexpected current loan values %+v", result)
	}
	if result.BreakEvenMonths != metrics.NeverBreaksEven {
		t.Errorf("BreakEvenMonths = %.2f, expected never", result.BreakEvenMonths)
	}
}

func TestCalculateRefinanceInvalid(t *testing.T) {
	inputs := []RefinanceInput{
		{CurrentBalance: -1, NewTermMonths: 360},
		{CurrentBalance: 1000, RemainingMonths: -1, NewTermMonths: 360},
		{CurrentBalance: 1000, ClosingCosts: -5, NewTermMonths: 360},
		{CurrentBalance: 1000, RemainingMonths: 12, NewTermMonths: 0},
	}
	for _, in := range inputs {
		if _, err := CalculateRefinance(in); !errors.Is(err, calcerr.ErrInvalidInput) {
			t.Errorf("CalculateRefinance(%+v) error = %v, expected ErrInvalidInput", in, err)
		}
	}
}

func TestSolveAPR(t *testing.T) {
	result, err := SolveAPR(200000, 4000, 6, 360)
	if err != nil {
		t.Fatalf("SolveAPR() error = %v", err)
	}
	if math.Abs(result.APRPercent-6.18948) > 1e-4 {
		t.Errorf("APRPercent = %.6f, expected 6.18948", result.APRPercent)
	}
	if math.Abs(presentValue(result.Payment, result.APRPercent/1200, 360)-196000) > 0.01 {
		t.Errorf("payments at APR do not discount to the net proceeds")
	}
}

func TestSolveAPRNoFees(t *testing.T) {
	result, err := SolveAPR(100000, 0, 5.25, 180)
	if err != nil {
		t.Fatalf("SolveAPR() error = %v", err)
	}
	if result.APRPercent != 5.25 {
		t.Errorf("APRPercent = %v, expected the note rate", result.APRPercent)
	}
}

func TestSolveAPRZeroNoteRate(t *testing.T) {
	result, err := SolveAPR(12000, 500, 0, 24)
	if err != nil {
		t.Fatalf("SolveAPR() error = %v", err)
	}
	if result.APRPercent <= 0 {
		t.Errorf("fees on a zero-rate loan should produce a positive APR, got %.4f", result.APRPercent)
	}
	if math.Abs(presentValue(500, result.APRPercent/1200, 24)-11500) > 0.01 {
		t.Errorf("payments at APR do not discount to the net proceeds")
	}
}

func TestSolveAPRInvalid(t *testing.T) {
	cases := []struct {
		amount, fees float64
		term         int
	}{
		{0, 0, 360},
		{1000, -1, 360},
		{1000, 1000, 360},
		{1000, 10, 0},
	}
	for _, c := range cases {
		if _, err := SolveAPR(c.amount, c.fees, 5, c.term); !errors.Is(err, calcerr.ErrInvalidInput) {
			t.Errorf("SolveAPR(%v, %v, 5, %d) error = %v, expected ErrInvalidInput", c.amount, c.fees, c.term, err)
		}
	}
}
