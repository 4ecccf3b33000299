package finance

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// InterestResult is the outcome of a simple or compound interest calculation.
type InterestResult struct {
	Principal   float64 `json:"principal"`
	Interest    float64 `json:"interest"`
	FutureValue float64 `json:"futureValue"`
}

// SimpleInterest accrues interest on the principal only.
func SimpleInterest(principal, annualRatePercent, years float64) (InterestResult, error) {
	if principal < 0 || years < 0 {
		return InterestResult{}, calcerr.Invalid("principal and years must not be negative")
	}
	interest := principal * mathutil.PercentToDecimal(annualRatePercent) * years
	return InterestResult{
		Principal:   principal,
		Interest:    interest,
		FutureValue: principal + interest,
	}, nil
}

// CompoundInterest compounds the principal compoundsPerYear times a year.
// Fractional years are compounded continuously in the exponent.
func CompoundInterest(principal, annualRatePercent, years float64, compoundsPerYear int) (InterestResult, error) {
	if principal < 0 || years < 0 {
		return InterestResult{}, calcerr.Invalid("principal and years must not be negative")
	}
	if compoundsPerYear <= 0 {
		return InterestResult{}, calcerr.Invalid("compounds per year must be positive, got %d", compoundsPerYear)
	}
	r := mathutil.PeriodicRate(annualRatePercent, compoundsPerYear)
	if r <= -1 {
		return InterestResult{}, calcerr.Invalid("periodic rate %.6f must be greater than -100%%", r)
	}

	fv := principal * math.Pow(1+r, years*float64(compoundsPerYear))
	return InterestResult{
		Principal:   principal,
		Interest:    fv - principal,
		FutureValue: fv,
	}, nil
}

// CDInput describes a certificate of deposit held to maturity.
type CDInput struct {
	Deposit           float64
	AnnualRatePercent float64
	TermMonths        int
	CompoundsPerYear  int
	TaxRatePercent    float64
}

// CDResult is the maturity value of a certificate of deposit. APY is a
// decimal.
type CDResult struct {
	APY              float64 `json:"apy"`
	MaturityValue    float64 `json:"maturityValue"`
	Interest         float64 `json:"interest"`
	AfterTaxInterest float64 `json:"afterTaxInterest"`
}

// CertificateOfDeposit computes the annual percentage yield and the value at
// maturity. CompoundsPerYear defaults to monthly.
func CertificateOfDeposit(in CDInput) (CDResult, error) {
	if in.TermMonths <= 0 {
		return CDResult{}, calcerr.Invalid("term must be a positive number of months, got %d", in.TermMonths)
	}
	if in.TaxRatePercent < 0 || in.TaxRatePercent > constants.PercentageMultiplier {
		return CDResult{}, calcerr.Invalid("tax rate %.2f%% is outside 0-100%%", in.TaxRatePercent)
	}
	compounds := in.CompoundsPerYear
	if compounds == 0 {
		compounds = constants.MonthsPerYear
	}

	years := float64(in.TermMonths) / constants.MonthsPerYear
	grown, err := CompoundInterest(in.Deposit, in.AnnualRatePercent, years, compounds)
	if err != nil {
		return CDResult{}, err
	}

	return CDResult{
		APY:              mathutil.EffectiveAnnualRate(in.AnnualRatePercent, compounds),
		MaturityValue:    grown.FutureValue,
		Interest:         grown.Interest,
		AfterTaxInterest: AfterTaxValue(grown.FutureValue, in.Deposit, in.TaxRatePercent) - in.Deposit,
	}, nil
}

// ROI is the return on investment as a decimal, or 0 when nothing was
// invested.
func ROI(invested, returned float64) float64 {
	if invested <= 0 {
		return 0
	}
	return (returned - invested) / invested
}

// AnnualizedROI spreads the return evenly across years as a compound rate.
func AnnualizedROI(invested, returned, years float64) float64 {
	return CAGR(invested, returned, years)
}
