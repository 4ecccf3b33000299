package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		input    float64
		expected bool
	}{
		{0.0, true},
		{0.001, true},
		{-0.001, true},
		{0.01, true},
		{0.02, false},
		{-100.0, false},
	}

	for _, tt := range tests {
		if result := IsZero(tt.input); result != tt.expected {
			t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestPercentHelpers(t *testing.T) {
	if got := CalculatePercentage(25, 200); got != 12.5 {
		t.Errorf("CalculatePercentage(25, 200) = %v, expected 12.5", got)
	}
	if got := CalculatePercentage(25, 0); got != 0 {
		t.Errorf("CalculatePercentage with zero total = %v, expected 0", got)
	}
	if got := ApplyPercentage(1000, 7.5); math.Abs(got-75) > 1e-12 {
		t.Errorf("ApplyPercentage(1000, 7.5) = %v, expected 75", got)
	}
	if got := SafeDivide(10, 0); got != 0 {
		t.Errorf("SafeDivide(10, 0) = %v, expected 0", got)
	}
}

func TestPeriodicRate(t *testing.T) {
	tests := []struct {
		name           string
		annualPercent  float64
		periodsPerYear int
		expected       float64
	}{
		{"Monthly six percent", 6, 12, 0.005},
		{"Quarterly eight percent", 8, 4, 0.02},
		{"Zero rate", 0, 12, 0},
		{"Negative real return", -2.4, 12, -0.002},
		{"Annual", 5, 1, 0.05},
		{"No periods", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PeriodicRate(tt.annualPercent, tt.periodsPerYear)
			if math.Abs(result-tt.expected) > 1e-15 {
				t.Errorf("PeriodicRate(%v, %d) = %v, expected %v", tt.annualPercent, tt.periodsPerYear, result, tt.expected)
			}
		})
	}
}

func TestTotalPeriods(t *testing.T) {
	tests := []struct {
		years          float64
		periodsPerYear int
		expected       int
	}{
		{30, 12, 360},
		{2.5, 12, 30},
		{0, 12, 0},
		{10, 4, 40},
	}

	for _, tt := range tests {
		if result := TotalPeriods(tt.years, tt.periodsPerYear); result != tt.expected {
			t.Errorf("TotalPeriods(%v, %d) = %d, expected %d", tt.years, tt.periodsPerYear, result, tt.expected)
		}
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	// 12% compounded monthly yields 12.6825%.
	if got := EffectiveAnnualRate(12, 12); math.Abs(got-0.126825030131970) > 1e-12 {
		t.Errorf("EffectiveAnnualRate(12, 12) = %v", got)
	}
	if got := EffectiveAnnualRate(5, 1); math.Abs(got-0.05) > 1e-15 {
		t.Errorf("EffectiveAnnualRate(5, 1) = %v", got)
	}
}
