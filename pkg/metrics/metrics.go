// Package metrics computes derived investment-property and refinance ratios
// from the outputs of the loan and growth engines. Ratios are returned as
// decimals (0.08 for 8%) and a zero denominator yields 0.
package metrics

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// NeverBreaksEven is returned by RefinanceBreakEvenMonths when the monthly
// savings cannot recover the closing costs.
const NeverBreaksEven = -1.0

// CapRate is annual net operating income over property value.
func CapRate(annualNOI, propertyValue float64) float64 {
	return mathutil.SafeDivide(annualNOI, propertyValue)
}

// CashOnCash is annual pre-tax cash flow over total cash invested.
func CashOnCash(annualCashFlow, totalCashInvested float64) float64 {
	return mathutil.SafeDivide(annualCashFlow, totalCashInvested)
}

// DSCR is the debt service coverage ratio.
func DSCR(annualNOI, annualDebtService float64) float64 {
	return mathutil.SafeDivide(annualNOI, annualDebtService)
}

// BreakEvenOccupancy is the share of potential gross income needed to cover
// operating expenses and debt service.
func BreakEvenOccupancy(operatingExpenses, debtService, potentialGrossIncome float64) float64 {
	return mathutil.SafeDivide(operatingExpenses+debtService, potentialGrossIncome)
}

// OnePercentRule returns monthly rent over purchase price; at least 0.01
// passes the rule.
func OnePercentRule(monthlyRent, purchasePrice float64) float64 {
	return mathutil.SafeDivide(monthlyRent, purchasePrice)
}

// PassesOnePercentRule reports whether rent is at least 1% of price.
func PassesOnePercentRule(monthlyRent, purchasePrice float64) bool {
	return purchasePrice > 0 && OnePercentRule(monthlyRent, purchasePrice) >= 0.01
}

// FiftyPercentRule estimates monthly cash flow by assuming operating expenses
// consume half of the gross rent.
func FiftyPercentRule(monthlyRent, monthlyDebtService float64) float64 {
	return monthlyRent*0.5 - monthlyDebtService
}

// GrossRentMultiplier is price over annual gross rent.
func GrossRentMultiplier(price, annualGrossRent float64) float64 {
	return mathutil.SafeDivide(price, annualGrossRent)
}

// StraightLineDepreciation is the annual deduction for residential rental
// property over the fixed 27.5 year recovery period.
func StraightLineDepreciation(depreciableBasis float64) float64 {
	if depreciableBasis <= 0 {
		return 0
	}
	return depreciableBasis / constants.ResidentialDepreciationYears
}

// DepreciationYear is one row of a depreciation schedule.
type DepreciationYear struct {
	Year          int     `json:"year"`
	Deduction     float64 `json:"deduction"`
	Accumulated   float64 `json:"accumulated"`
	RemainingBase float64 `json:"remainingBasis"`
}

// DepreciationSchedule lists yearly straight-line deductions until the basis
// is exhausted; the final half year carries the remainder.
func DepreciationSchedule(depreciableBasis float64) []DepreciationYear {
	annual := StraightLineDepreciation(depreciableBasis)
	if annual == 0 {
		return nil
	}

	years := int(math.Ceil(constants.ResidentialDepreciationYears))
	schedule := make([]DepreciationYear, 0, years)
	accumulated := 0.0
	for year := 1; year <= years; year++ {
		deduction := math.Min(annual, depreciableBasis-accumulated)
		accumulated += deduction
		if year == years {
			accumulated = depreciableBasis
		}
		schedule = append(schedule, DepreciationYear{
			Year:          year,
			Deduction:     deduction,
			Accumulated:   accumulated,
			RemainingBase: depreciableBasis - accumulated,
		})
	}
	return schedule
}

// RefinanceBreakEvenMonths is closing costs over monthly savings, or
// NeverBreaksEven when there are no savings. Savings of a cent or less count as
// none.
func RefinanceBreakEvenMonths(closingCosts, monthlySavings float64) float64 {
	if monthlySavings <= 0 || mathutil.IsZero(monthlySavings) {
		return NeverBreaksEven
	}
	return closingCosts / monthlySavings
}
