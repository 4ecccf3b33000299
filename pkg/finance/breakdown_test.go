package finance

import (
	"math"
	"testing"
)

func TestBreakdownMatchesProjection(t *testing.T) {
	in := InvestmentInput{Lumpsum: 5000, MonthlyContribution: 300, StepUpPercent: 8, AnnualRatePercent: 9, Years: 6}

	rows, err := Breakdown(in)
	if err != nil {
		t.Fatalf("Breakdown() error = %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}

	full, err := Project(in)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	last := rows[len(rows)-1]
	if math.Abs(last.EndingBalance-full.FutureValue) > 1e-9 {
		t.Errorf("final balance %.4f differs from projection %.4f", last.EndingBalance, full.FutureValue)
	}

	contributed, growth := in.Lumpsum, 0.0
	for i, row := range rows {
		if row.Year != i+1 {
			t.Errorf("row %d has year %d", i, row.Year)
		}
		contributed += row.Contribution
		growth += row.Growth
		if math.Abs(row.CumulativeContribution-contributed) > 1e-6 {
			t.Errorf("year %d cumulative contribution %.4f, expected %.4f", row.Year, row.CumulativeContribution, contributed)
		}
		if math.Abs(row.CumulativeGrowth-growth) > 1e-6 {
			t.Errorf("year %d cumulative growth %.4f, expected %.4f", row.Year, row.CumulativeGrowth, growth)
		}
	}

	// Contributions step up each year.
	if rows[1].Contribution <= rows[0].Contribution {
		t.Errorf("year 2 contribution %.2f should exceed year 1 %.2f", rows[1].Contribution, rows[0].Contribution)
	}
}

func TestYearsRestartable(t *testing.T) {
	in := InvestmentInput{MonthlyContribution: 100, AnnualRatePercent: 5, Years: 3}
	seq := Years(in)

	var first, second []YearlyBreakdown
	for row := range seq {
		first = append(first, row)
	}
	for row := range seq {
		second = append(second, row)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 rows twice, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between iterations", i)
		}
	}
}

func TestYearsPartialYearAndEarlyStop(t *testing.T) {
	in := InvestmentInput{MonthlyContribution: 100, Years: 2.5}
	count := 0
	var last YearlyBreakdown
	for row := range Years(in) {
		count++
		last = row
	}
	if count != 3 {
		t.Fatalf("expected 3 rows for 2.5 years, got %d", count)
	}
	if last.Contribution != 600 || last.CumulativeContribution != 3000 {
		t.Errorf("partial year row = %+v", last)
	}

	count = 0
	for range Years(in) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iteration did not stop early")
	}
}

func TestYearsInvalidInput(t *testing.T) {
	for range Years(InvestmentInput{Years: -1}) {
		t.Fatal("invalid input should yield no rows")
	}
	if _, err := Breakdown(InvestmentInput{Years: -1}); err == nil {
		t.Error("expected an error from Breakdown")
	}
}
