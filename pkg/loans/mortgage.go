package loans

import (
	"time"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// HomeLoan holds the inputs shared by every mortgage flavour. TermMonths is
// the amortization length in months.
type HomeLoan struct {
	HomePrice             float64
	DownPayment           float64
	AnnualRatePercent     float64
	TermMonths            int
	StartDate             time.Time
	MonthlyTax            float64
	MonthlyInsurance      float64
	MonthlyHOA            float64
	ExtraMonthlyPrincipal float64
}

// BasePrincipal is the purchase price less the down payment.
func (h HomeLoan) BasePrincipal() (float64, error) {
	if h.HomePrice < 0 {
		return 0, calcerr.Invalid("home price must not be negative, got %.2f", h.HomePrice)
	}
	if h.DownPayment < 0 {
		return 0, calcerr.Invalid("down payment must not be negative, got %.2f", h.DownPayment)
	}
	if h.DownPayment > h.HomePrice {
		return 0, calcerr.Invalid("down payment %.2f exceeds home price %.2f", h.DownPayment, h.HomePrice)
	}
	return h.HomePrice - h.DownPayment, nil
}

// DownPaymentPercent is the down payment as a percentage of price.
func (h HomeLoan) DownPaymentPercent() float64 {
	return mathutil.CalculatePercentage(h.DownPayment, h.HomePrice)
}

func (h HomeLoan) adders() MonthlyAdders {
	return MonthlyAdders{Tax: h.MonthlyTax, Insurance: h.MonthlyInsurance, HOA: h.MonthlyHOA}
}

func (h HomeLoan) loanInput(principal float64) LoanInput {
	return LoanInput{
		Principal:             principal,
		AnnualRatePercent:     h.AnnualRatePercent,
		TermMonths:            h.TermMonths,
		StartDate:             h.StartDate,
		ExtraMonthlyPrincipal: h.ExtraMonthlyPrincipal,
	}
}

// MortgageResult is the monthly breakdown and schedule of a home loan.
type MortgageResult struct {
	LoanAmount               float64 `json:"loanAmount"`
	FinancedAmount           float64 `json:"financedAmount"`
	UpfrontFee               float64 `json:"upfrontFee"`
	UpfrontFeeFinanced       bool    `json:"upfrontFeeFinanced"`
	LoanToValuePercent       float64 `json:"loanToValuePercent"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalInterest"`
	MonthlyTax               float64 `json:"monthlyTax"`
	MonthlyInsurance         float64 `json:"monthlyInsurance"`
	MonthlyHOA               float64 `json:"monthlyHOA"`
	MonthlyMortgageInsurance float64 `json:"monthlyMortgageInsurance"`
	MortgageInsuranceMonths  int     `json:"mortgageInsuranceMonths"`
	TotalMonthlyPayment      float64 `json:"totalMonthlyPayment"`
	TotalOfPayments          float64 `json:"totalOfPayments"`
	Loan                     Result  `json:"loan"`
}

func (h HomeLoan) finish(result *MortgageResult, generator *ScheduleGenerator, principal float64, insurance float64, overlays ...Overlay) error {
	all := append([]Overlay{h.adders()}, overlays...)
	loan, err := generator.Generate(h.loanInput(principal), all...)
	if err != nil {
		return err
	}

	result.LoanAmount = principal
	result.FinancedAmount = loan.PrincipalFinanced
	result.LoanToValuePercent = mathutil.CalculatePercentage(principal, h.HomePrice)
	result.MonthlyPrincipalInterest = loan.Payment
	result.MonthlyTax = h.MonthlyTax
	result.MonthlyInsurance = h.MonthlyInsurance
	result.MonthlyHOA = h.MonthlyHOA
	result.MonthlyMortgageInsurance = insurance
	result.TotalMonthlyPayment = loan.Payment + h.adders().Total() + insurance
	result.TotalOfPayments = loan.TotalPaid + loan.TotalFees
	result.Loan = loan
	return nil
}

// MortgageInput is a conventional mortgage. PMI applies when the loan is more
// than 80% of the price and PMIRatePercent is set.
type MortgageInput struct {
	HomeLoan
	PMIRatePercent   float64
	PMICutoffPercent float64
}

// CalculateMortgage computes a conventional mortgage.
func CalculateMortgage(in MortgageInput) (MortgageResult, error) {
	return NewScheduleGenerator(nil).Mortgage(in)
}

// Mortgage computes a conventional mortgage with the generator's logger.
func (g *ScheduleGenerator) Mortgage(in MortgageInput) (MortgageResult, error) {
	principal, err := in.BasePrincipal()
	if err != nil {
		return MortgageResult{}, err
	}
	if in.PMIRatePercent < 0 {
		return MortgageResult{}, calcerr.Invalid("pmi rate must not be negative, got %.3f", in.PMIRatePercent)
	}

	var result MortgageResult
	var overlays []Overlay
	insurance := 0.0
	if in.PMIRatePercent > 0 && mathutil.CalculatePercentage(principal, in.HomePrice) > constants.PMIRequiredAboveLTV {
		pmi := PrivateMortgageInsurance{
			AnnualRatePercent: in.PMIRatePercent,
			PropertyValue:     in.HomePrice,
			CutoffLTVPercent:  in.PMICutoffPercent,
		}
		overlays = append(overlays, pmi)
		insurance = pmi.Monthly(principal)
	}

	if err := in.finish(&result, g, principal, insurance, overlays...); err != nil {
		return MortgageResult{}, err
	}

	if insurance > 0 {
		adders := in.adders().Total()
		for _, p := range result.Loan.Schedule {
			if p.Fees-adders > constants.CurrencyTolerance {
				result.MortgageInsuranceMonths++
			}
		}
	}
	return result, nil
}

// FHAInput is an FHA-insured mortgage. FHA loans always carry both
// premiums, so a zero rate means unset rather than free.
type FHAInput struct {
	HomeLoan
	// UpfrontMIPPercent of the base loan; zero selects
	// constants.DefaultFHAUpfrontMIPPercent.
	UpfrontMIPPercent float64
	// AnnualMIPPercent of the financed balance; zero selects
	// constants.DefaultFHAAnnualMIPPercent.
	AnnualMIPPercent float64
}

// CalculateFHA computes an FHA mortgage: the upfront MIP is financed into the
// balance and the annual MIP is charged monthly on the financed amount.
func CalculateFHA(in FHAInput) (MortgageResult, error) {
	return NewScheduleGenerator(nil).FHA(in)
}

// FHA computes an FHA mortgage with the generator's logger.
func (g *ScheduleGenerator) FHA(in FHAInput) (MortgageResult, error) {
	principal, err := in.BasePrincipal()
	if err != nil {
		return MortgageResult{}, err
	}
	if in.UpfrontMIPPercent < 0 || in.AnnualMIPPercent < 0 {
		return MortgageResult{}, calcerr.Invalid("fha premiums must not be negative")
	}

	upfrontRate := in.UpfrontMIPPercent
	if upfrontRate == 0 {
		upfrontRate = constants.DefaultFHAUpfrontMIPPercent
	}
	annualRate := in.AnnualMIPPercent
	if annualRate == 0 {
		annualRate = constants.DefaultFHAAnnualMIPPercent
	}

	upfront := UpfrontFee{RatePercent: upfrontRate}
	mip := FHAMortgageInsurance{AnnualRatePercent: annualRate}
	financed := upfront.FinancedPrincipal(principal)

	var result MortgageResult
	if err := in.finish(&result, g, principal, mip.Monthly(financed), upfront, mip); err != nil {
		return MortgageResult{}, err
	}
	result.UpfrontFee = upfront.Amount(principal)
	result.UpfrontFeeFinanced = true
	result.MortgageInsuranceMonths = result.Loan.PayoffMonths()
	return result, nil
}
