package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"go.uber.org/zap"
)

const valueTolerance = 1e-4

func TestLumpsumFutureValue(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		expected  float64
	}{
		{"Ten years at seven percent", 10000, 7, 10, 20096.6138},
		{"Zero rate", 10000, 0, 10, 10000},
		{"Zero years", 5000, 7, 0, 5000},
		{"Negative rate shrinks", 1000, -12, 1, 1000 * math.Pow(0.99, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LumpsumFutureValue(tt.principal, tt.rate, tt.years)
			if math.Abs(got-tt.expected) > valueTolerance {
				t.Errorf("LumpsumFutureValue() = %.4f, expected %.4f", got, tt.expected)
			}
		})
	}
}

func TestRecurringFutureValue(t *testing.T) {
	got := RecurringFutureValue(1000, 7, 10)
	if math.Abs(got-174094.4688) > valueTolerance {
		t.Errorf("RecurringFutureValue() = %.4f, expected 174094.4688", got)
	}

	if got := RecurringFutureValue(250, 0, 2); got != 6000 {
		t.Errorf("zero rate RecurringFutureValue() = %.4f, expected 6000", got)
	}
}

func TestStepUpFutureValue(t *testing.T) {
	fv, contributed := StepUpFutureValue(1000, 10, 12, 2)
	if math.Abs(fv-28524.1323) > valueTolerance {
		t.Errorf("StepUpFutureValue() = %.4f, expected 28524.1323", fv)
	}
	if math.Abs(contributed-25200) > 1e-9 {
		t.Errorf("contributed = %.4f, expected 25200", contributed)
	}

	// Without a step-up the simulation must match the closed form.
	flat, _ := StepUpFutureValue(1000, 0, 12, 2)
	if math.Abs(flat-RecurringFutureValue(1000, 12, 2)) > 1e-6 {
		t.Errorf("flat simulation %.6f differs from closed form %.6f", flat, RecurringFutureValue(1000, 12, 2))
	}
}

func TestProjectCombined(t *testing.T) {
	result, err := NewProjector(zap.NewNop()).Project(InvestmentInput{
		Lumpsum:             10000,
		MonthlyContribution: 1000,
		AnnualRatePercent:   7,
		Years:               10,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	expected := 20096.6138 + 174094.4688
	if math.Abs(result.FutureValue-expected) > 2*valueTolerance {
		t.Errorf("FutureValue = %.4f, expected %.4f", result.FutureValue, expected)
	}
	if result.TotalContributed != 130000 {
		t.Errorf("TotalContributed = %.2f, expected 130000", result.TotalContributed)
	}
	if math.Abs(result.TotalGrowth-(result.FutureValue-result.TotalContributed)) > 1e-9 {
		t.Errorf("TotalGrowth is not FutureValue - TotalContributed")
	}
	if result.RealValue != result.FutureValue || result.AfterTaxValue != result.FutureValue {
		t.Errorf("expected unadjusted real and after-tax values")
	}
}

func TestProjectCAGRRoundTrip(t *testing.T) {
	inputs := []InvestmentInput{
		{Lumpsum: 10000, AnnualRatePercent: 7, Years: 10},
		{MonthlyContribution: 500, AnnualRatePercent: 9, Years: 25},
		{Lumpsum: 2500, MonthlyContribution: 200, StepUpPercent: 5, AnnualRatePercent: 11, Years: 15},
		{Lumpsum: 1000, AnnualRatePercent: -3, Years: 4},
		{MonthlyContribution: 100, AnnualRatePercent: 6, Years: 2.5},
	}

	for _, in := range inputs {
		result, err := Project(in)
		if err != nil {
			t.Fatalf("Project(%+v) error = %v", in, err)
		}
		recovered := result.TotalContributed * math.Pow(1+result.CAGR, in.Years)
		if math.Abs(recovered-result.FutureValue)/result.FutureValue > 1e-6 {
			t.Errorf("CAGR %.6f does not round trip: %.6f vs %.6f", result.CAGR, recovered, result.FutureValue)
		}
	}
}

func TestProjectAdjustments(t *testing.T) {
	result, err := Project(InvestmentInput{
		Lumpsum:              10000,
		AnnualRatePercent:    7,
		Years:                10,
		InflationRatePercent: 3,
		TaxRatePercent:       15,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	expectedReal := result.FutureValue / math.Pow(1.03, 10)
	if math.Abs(result.RealValue-expectedReal) > 1e-9 {
		t.Errorf("RealValue = %.4f, expected %.4f", result.RealValue, expectedReal)
	}
	expectedAfterTax := result.FutureValue - result.TotalGrowth*0.15
	if math.Abs(result.AfterTaxValue-expectedAfterTax) > 1e-9 {
		t.Errorf("AfterTaxValue = %.4f, expected %.4f", result.AfterTaxValue, expectedAfterTax)
	}
}

func TestAfterTaxValueNeverTaxesLosses(t *testing.T) {
	if got := AfterTaxValue(900, 1000, 25); got != 900 {
		t.Errorf("AfterTaxValue() = %.2f, expected 900", got)
	}
}

func TestProjectInvalidInput(t *testing.T) {
	inputs := []InvestmentInput{
		{Lumpsum: -1, Years: 1},
		{MonthlyContribution: -50, Years: 1},
		{Lumpsum: 100, Years: -1},
		{Lumpsum: 100, Years: math.NaN()},
		{Lumpsum: 100, Years: 1, TaxRatePercent: 120},
		{Lumpsum: 100, Years: 1, InflationRatePercent: -100},
		{Lumpsum: 100, Years: 1, AnnualRatePercent: -1200},
		{Lumpsum: 100, Years: 75},
	}
	for _, in := range inputs {
		if _, err := Project(in); !errors.Is(err, calcerr.ErrInvalidInput) {
			t.Errorf("Project(%+v) error = %v, expected ErrInvalidInput", in, err)
		}
	}
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		years    float64
		expected float64
	}{
		{"Doubling over ten years", 10000, 20000, 10, 0.0717735},
		{"No change", 5000, 5000, 3, 0},
		{"Zero start", 0, 1000, 5, 0},
		{"Negative start", -100, 1000, 5, 0},
		{"Zero years", 1000, 2000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGR(tt.start, tt.end, tt.years)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("CAGR() returned %v", got)
			}
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("CAGR() = %.7f, expected %.7f", got, tt.expected)
			}
		})
	}
}
