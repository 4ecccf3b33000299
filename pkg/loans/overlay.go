package loans

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Overlay layers a loan-type specific cost onto a base amortization.
type Overlay interface {
	// FinancedPrincipal returns the amount to amortize given the principal
	// accumulated so far.
	FinancedPrincipal(base float64) float64
	// PeriodFee returns the non-amortizing cost billed with period p.
	PeriodFee(p Period, financed float64) float64
}

// UpfrontFee finances a one-time fee, such as the FHA upfront MIP or the VA
// funding fee, into the loan balance.
type UpfrontFee struct {
	RatePercent float64
}

// FinancedPrincipal adds the fee to the balance.
func (f UpfrontFee) FinancedPrincipal(base float64) float64 {
	return base + mathutil.ApplyPercentage(base, f.RatePercent)
}

// PeriodFee is always zero; the fee is paid through the amortization.
func (f UpfrontFee) PeriodFee(Period, float64) float64 {
	return 0
}

// Amount is the fee financed on top of base.
func (f UpfrontFee) Amount(base float64) float64 {
	return mathutil.ApplyPercentage(base, f.RatePercent)
}

// MonthlyAdders are escrowed costs paid every period regardless of balance.
type MonthlyAdders struct {
	Tax       float64
	Insurance float64
	HOA       float64
}

// FinancedPrincipal leaves the balance unchanged.
func (m MonthlyAdders) FinancedPrincipal(base float64) float64 {
	return base
}

// PeriodFee sums the fixed adders.
func (m MonthlyAdders) PeriodFee(Period, float64) float64 {
	return m.Total()
}

// Total is the combined monthly adder.
func (m MonthlyAdders) Total() float64 {
	return m.Tax + m.Insurance + m.HOA
}

// FHAMortgageInsurance is the FHA annual MIP charged monthly on the financed
// principal. It is held constant for the whole term and never cancels.
type FHAMortgageInsurance struct {
	AnnualRatePercent float64
}

// FinancedPrincipal leaves the balance unchanged.
func (m FHAMortgageInsurance) FinancedPrincipal(base float64) float64 {
	return base
}

// PeriodFee is financed * rate / 12.
func (m FHAMortgageInsurance) PeriodFee(_ Period, financed float64) float64 {
	return m.Monthly(financed)
}

// Monthly is the MIP for the given financed principal.
func (m FHAMortgageInsurance) Monthly(financed float64) float64 {
	return mathutil.ApplyPercentage(financed, m.AnnualRatePercent) / constants.MonthsPerYear
}

// PrivateMortgageInsurance is conventional PMI, charged on the original loan
// amount until the loan-to-value ratio reaches CutoffLTVPercent.
type PrivateMortgageInsurance struct {
	AnnualRatePercent float64
	PropertyValue     float64
	CutoffLTVPercent  float64
}

// FinancedPrincipal leaves the balance unchanged.
func (m PrivateMortgageInsurance) FinancedPrincipal(base float64) float64 {
	return base
}

// PeriodFee charges PMI while the balance entering the period is above the
// cutoff share of the property value.
func (m PrivateMortgageInsurance) PeriodFee(p Period, financed float64) float64 {
	if !m.Active(p.StartingBalance()) {
		return 0
	}
	return m.Monthly(financed)
}

// Active reports whether PMI is still owed at the given balance.
func (m PrivateMortgageInsurance) Active(balance float64) bool {
	if m.PropertyValue <= 0 || m.AnnualRatePercent <= 0 {
		return false
	}
	cutoff := m.CutoffLTVPercent
	if cutoff <= 0 {
		cutoff = constants.DefaultMortgageInsuranceCutoff
	}
	return mathutil.CalculatePercentage(balance, m.PropertyValue) > cutoff
}

// Monthly is the full PMI charge for the given financed principal.
func (m PrivateMortgageInsurance) Monthly(financed float64) float64 {
	return mathutil.ApplyPercentage(financed, m.AnnualRatePercent) / constants.MonthsPerYear
}
