package loans

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
)

// VALoanPurpose selects the funding fee table.
type VALoanPurpose string

const (
	// VAPurchase is a home purchase or construction loan.
	VAPurchase VALoanPurpose = "purchase"
	// VACashOut is a cash-out refinance.
	VACashOut VALoanPurpose = "cashout"
	// VAIRRRL is an interest rate reduction refinance loan.
	VAIRRRL VALoanPurpose = "irrrl"
)

// ParseVALoanPurpose accepts the purpose names used in calculation files.
// An empty value means a purchase.
func ParseVALoanPurpose(value string) (VALoanPurpose, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "purchase":
		return VAPurchase, nil
	case "cashout", "cash-out", "cash_out":
		return VACashOut, nil
	case "irrrl", "streamline":
		return VAIRRRL, nil
	default:
		return "", calcerr.Invalid("unknown va loan purpose %q", value)
	}
}

// VAFundingFeeRate returns the funding fee as a percentage of the base loan.
// Disabled veterans are exempt regardless of purpose or prior use.
func VAFundingFeeRate(purpose VALoanPurpose, firstUse, disabled bool, downPaymentPercent float64) float64 {
	if disabled {
		return 0
	}

	switch purpose {
	case VAIRRRL:
		return 0.5
	case VACashOut:
		if firstUse {
			return 2.15
		}
		return 3.3
	default:
		switch {
		case downPaymentPercent >= 10:
			return 1.25
		case downPaymentPercent >= 5:
			return 1.5
		case firstUse:
			return 2.15
		default:
			return 3.3
		}
	}
}

// VAInput is a VA-guaranteed mortgage.
type VAInput struct {
	HomeLoan
	Purpose    VALoanPurpose
	FirstUse   bool
	Disabled   bool
	FinanceFee bool
}

// CalculateVA computes a VA mortgage. The funding fee is financed into the
// balance when FinanceFee is set and paid at closing otherwise. VA loans carry
// no monthly mortgage insurance.
func CalculateVA(in VAInput) (MortgageResult, error) {
	return NewScheduleGenerator(nil).VA(in)
}

// VA computes a VA mortgage with the generator's logger.
func (g *ScheduleGenerator) VA(in VAInput) (MortgageResult, error) {
	principal, err := in.BasePrincipal()
	if err != nil {
		return MortgageResult{}, err
	}

	purpose := in.Purpose
	if purpose == "" {
		purpose = VAPurchase
	}
	if _, err := ParseVALoanPurpose(string(purpose)); err != nil {
		return MortgageResult{}, fmt.Errorf("va loan: %w", err)
	}

	fee := UpfrontFee{RatePercent: VAFundingFeeRate(purpose, in.FirstUse, in.Disabled, in.DownPaymentPercent())}

	var overlays []Overlay
	if in.FinanceFee {
		overlays = append(overlays, fee)
	}

	var result MortgageResult
	if err := in.finish(&result, g, principal, 0, overlays...); err != nil {
		return MortgageResult{}, err
	}
	result.UpfrontFee = fee.Amount(principal)
	result.UpfrontFeeFinanced = in.FinanceFee && result.UpfrontFee > 0
	return result, nil
}
