package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// PercentToDecimal converts a percentage such as 6.5 into 0.065.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// PeriodicRate converts an annual percentage rate into the rate per period.
// Zero and negative rates pass through unchanged in sign.
func PeriodicRate(annualRatePercent float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return annualRatePercent / constants.PercentageMultiplier / float64(periodsPerYear)
}

// MonthlyRate is PeriodicRate with twelve periods per year.
func MonthlyRate(annualRatePercent float64) float64 {
	return PeriodicRate(annualRatePercent, constants.MonthsPerYear)
}

// TotalPeriods returns the whole number of periods in the given span of years.
func TotalPeriods(years float64, periodsPerYear int) int {
	return int(math.Round(years * float64(periodsPerYear)))
}

// EffectiveAnnualRate returns the effective annual yield (as a decimal) of a
// nominal annual percentage compounded periodsPerYear times.
func EffectiveAnnualRate(annualRatePercent float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return PercentToDecimal(annualRatePercent)
	}
	return math.Pow(1+PeriodicRate(annualRatePercent, periodsPerYear), float64(periodsPerYear)) - 1
}
