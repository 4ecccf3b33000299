package validation

import (
	"fmt"
	"slices"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// ValidateTerm warns when a loan term or horizon runs past the supported
// maximum.
func ValidateTerm(name string, termMonths int) string {
	if termMonths > constants.MaxTermMonths {
		return fmt.Sprintf("Calculation '%s' has a term of %d months, beyond the usual %d month maximum",
			name, termMonths, constants.MaxTermMonths)
	}
	return ""
}

// ValidateRate warns when a rate looks like a decimal fraction instead of a
// percentage.
func ValidateRate(name string, ratePercent float64) string {
	if ratePercent > 0 && ratePercent < 1 {
		return fmt.Sprintf("Calculation '%s' has a rate of %.4f%% - rates are percentages, did you mean %.2f%%?",
			name, ratePercent, ratePercent*constants.PercentageMultiplier)
	}
	return ""
}

// ValidateFHADownPayment warns when an FHA down payment is below the program
// minimum.
func ValidateFHADownPayment(name string, homePrice, downPayment float64) string {
	if homePrice <= 0 {
		return ""
	}
	pct := mathutil.CalculatePercentage(downPayment, homePrice)
	if pct < constants.FHAMinimumDownPaymentPercent {
		return fmt.Sprintf("Calculation '%s' FHA down payment is %.2f%% of the price, below the %.1f%% minimum",
			name, pct, constants.FHAMinimumDownPaymentPercent)
	}
	return ""
}

// ValidateStartDate checks that a start date, when given, parses as
// YYYY-MM or YYYY-MM-DD.
func ValidateStartDate(name, startDate string) string {
	if startDate == "" {
		return ""
	}
	if _, err := datetime.ParseDate(startDate, time.Time{}); err != nil {
		return fmt.Sprintf("Calculation '%s' start date %q is not YYYY-MM or YYYY-MM-DD", name, startDate)
	}
	return ""
}

// CalculationConfig is the subset of a calculation that validation inspects.
type CalculationConfig struct {
	Name        string
	Type        string
	Active      bool
	TermMonths  int
	RatePercent float64
	HomePrice   float64
	DownPayment float64
	StartDate   string
}

// ConfigValidator validates a set of calculations against the known types.
type ConfigValidator struct {
	KnownTypes   []string
	Calculations []CalculationConfig
}

// ValidateAll validates every active calculation and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	seen := make(map[string]bool)

	for i, calc := range cv.Calculations {
		if !calc.Active {
			continue
		}

		name := calc.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Calculation %s has no name", name))
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Calculation name '%s' is used more than once", name))
		}
		seen[name] = true

		if !slices.Contains(cv.KnownTypes, calc.Type) {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' has unknown type '%s'", name, calc.Type))
			continue
		}

		for _, warning := range []string{
			ValidateTerm(name, calc.TermMonths),
			ValidateRate(name, calc.RatePercent),
			ValidateStartDate(name, calc.StartDate),
		} {
			if warning != "" {
				warnings = append(warnings, warning)
			}
		}

		if calc.Type == "fha" {
			if warning := ValidateFHADownPayment(name, calc.HomePrice, calc.DownPayment); warning != "" {
				warnings = append(warnings, warning)
			}
		}
	}

	return warnings
}
