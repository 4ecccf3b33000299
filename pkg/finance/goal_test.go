package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
)

func TestGoalContribution(t *testing.T) {
	result, err := GoalContribution(GoalInput{Target: 100000, AnnualRatePercent: 7, Years: 10})
	if err != nil {
		t.Fatalf("GoalContribution() error = %v", err)
	}
	if math.Abs(result.MonthlyContribution-574.40) > 0.01 {
		t.Errorf("MonthlyContribution = %.4f, expected 574.40", result.MonthlyContribution)
	}

	// Contributing the result must land on the target.
	reached := RecurringFutureValue(result.MonthlyContribution, 7, 10)
	if math.Abs(reached-100000) > 1e-6 {
		t.Errorf("contribution reaches %.6f, expected 100000", reached)
	}
}

func TestGoalContributionWithSavings(t *testing.T) {
	result, err := GoalContribution(GoalInput{Target: 100000, CurrentSavings: 20000, AnnualRatePercent: 6, Years: 8})
	if err != nil {
		t.Fatalf("GoalContribution() error = %v", err)
	}
	reached := LumpsumFutureValue(20000, 6, 8) + RecurringFutureValue(result.MonthlyContribution, 6, 8)
	if math.Abs(reached-100000) > 1e-6 {
		t.Errorf("savings plus contributions reach %.6f, expected 100000", reached)
	}
	if math.Abs(result.TotalContributed-result.MonthlyContribution*96) > 1e-9 {
		t.Errorf("TotalContributed = %.4f", result.TotalContributed)
	}
}

func TestGoalAlreadyMet(t *testing.T) {
	tests := []GoalInput{
		{Target: 10000, CurrentSavings: 10000, AnnualRatePercent: 5, Years: 5},
		{Target: 10000, CurrentSavings: 8000, AnnualRatePercent: 8, Years: 5},
		{Target: 0, AnnualRatePercent: 5, Years: 5},
		{Target: 1000, CurrentSavings: 1000, Years: 0},
	}
	for _, in := range tests {
		result, err := GoalContribution(in)
		if err != nil {
			t.Fatalf("GoalContribution(%+v) error = %v", in, err)
		}
		if result.MonthlyContribution != 0 {
			t.Errorf("GoalContribution(%+v) = %.4f, expected 0", in, result.MonthlyContribution)
		}
	}
}

func TestGoalZeroRate(t *testing.T) {
	result, err := GoalContribution(GoalInput{Target: 12000, Years: 2})
	if err != nil {
		t.Fatalf("GoalContribution() error = %v", err)
	}
	if result.MonthlyContribution != 500 {
		t.Errorf("MonthlyContribution = %.4f, expected 500", result.MonthlyContribution)
	}
}

func TestGoalInvalid(t *testing.T) {
	inputs := []GoalInput{
		{Target: -1, Years: 5},
		{Target: 1000, CurrentSavings: -5, Years: 5},
		{Target: 1000, Years: -1},
		{Target: 1000, Years: 0},
	}
	for _, in := range inputs {
		if _, err := GoalContribution(in); !errors.Is(err, calcerr.ErrInvalidInput) {
			t.Errorf("GoalContribution(%+v) error = %v, expected ErrInvalidInput", in, err)
		}
	}
}
