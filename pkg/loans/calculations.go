// Package loans provides the amortization engine shared by every loan-like
// calculator, the loan-type overlays layered on top of it, and the mortgage,
// refinance and APR calculators built from those pieces.
package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Period holds the values for a given payment. Payment is always the sum of
// Principal and Interest; Fees are the overlay costs billed alongside it.
type Period struct {
	Index            int       `json:"period"`
	Date             time.Time `json:"date"`
	Payment          float64   `json:"payment"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	RemainingBalance float64   `json:"remainingBalance"`
	Fees             float64   `json:"fees,omitempty"`
	TotalPayment     float64   `json:"totalPayment"`
}

// StartingBalance is the balance outstanding before this period's payment.
func (p Period) StartingBalance() float64 {
	return p.RemainingBalance + p.Principal
}

// LoanInput describes a fixed-rate, end-of-period amortizing loan.
type LoanInput struct {
	Principal             float64
	AnnualRatePercent     float64
	TermMonths            int
	StartDate             time.Time
	ExtraMonthlyPrincipal float64
}

// Result aggregates an amortized loan. PrincipalFinanced can exceed the
// nominal principal when an overlay finances a fee into the loan.
type Result struct {
	Payment           float64  `json:"payment"`
	TotalInterest     float64  `json:"totalInterest"`
	TotalPaid         float64  `json:"totalPaid"`
	PrincipalFinanced float64  `json:"principalFinanced"`
	TotalFees         float64  `json:"totalFees"`
	Schedule          []Period `json:"schedule"`
}

// PayoffMonths is the number of payments actually made.
func (r Result) PayoffMonths() int {
	return len(r.Schedule)
}

// Payment returns the fixed periodic payment that retires principal over
// periods at the given periodic rate.
func Payment(principal, periodicRate float64, periods int) (float64, error) {
	if periods <= 0 {
		return 0, calcerr.Invalid("number of periods must be positive, got %d", periods)
	}
	if principal < 0 {
		return 0, calcerr.Invalid("principal must not be negative, got %.2f", principal)
	}
	if periodicRate <= -1 {
		return 0, calcerr.Invalid("periodic rate %.6f must be greater than -100%%", periodicRate)
	}
	if principal == 0 {
		return 0, nil
	}
	if periodicRate == 0 {
		return principal / float64(periods), nil
	}

	power := math.Pow(1+periodicRate, float64(periods))
	return principal * periodicRate * power / (power - 1), nil
}

// AnnuityDuePayment is the payment when each payment is made at the start of
// the period instead of the end.
func AnnuityDuePayment(principal, periodicRate float64, periods int) (float64, error) {
	payment, err := Payment(principal, periodicRate, periods)
	if err != nil {
		return 0, err
	}
	return payment / (1 + periodicRate), nil
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) (float64, error) {
	return Payment(principal, mathutil.MonthlyRate(annualRatePercent), termMonths)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualRatePercent)
}

// ScheduleGenerator expands loans into period-by-period schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Amortize generates a schedule without logging.
func Amortize(in LoanInput, overlays ...Overlay) (Result, error) {
	return NewScheduleGenerator(nil).Generate(in, overlays...)
}

// Generate creates the complete amortization schedule for a loan. Overlays
// may increase the financed principal and add per-period fees; they never
// alter the interest/principal split.
func (g *ScheduleGenerator) Generate(in LoanInput, overlays ...Overlay) (Result, error) {
	if err := validateLoanInput(in); err != nil {
		return Result{}, err
	}

	financed := in.Principal
	for _, overlay := range overlays {
		if overlay == nil {
			continue
		}
		financed = overlay.FinancedPrincipal(financed)
	}

	if financed == 0 {
		g.logger.Debug("zero principal, no loan needed",
			zap.String("op", "loans.Generate"),
		)
		return Result{Schedule: []Period{}}, nil
	}

	rate := mathutil.MonthlyRate(in.AnnualRatePercent)
	payment, err := Payment(financed, rate, in.TermMonths)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Payment:           payment,
		PrincipalFinanced: financed,
		Schedule:          make([]Period, 0, in.TermMonths),
	}

	balance := financed
	for month := 1; month <= in.TermMonths; month++ {
		var current Period
		current.Index = month
		current.Date = datetime.PaymentDate(in.StartDate, month)
		current.Interest = CalculateInterestPayment(balance, in.AnnualRatePercent)
		current.Principal = payment - current.Interest

		extra := 0.0
		if in.ExtraMonthlyPrincipal > 0 {
			// Cap the prepayment so it never pays past the balance.
			extra = math.Min(in.ExtraMonthlyPrincipal, math.Max(balance-current.Principal, 0))
			current.Principal += extra
		}

		final := month == in.TermMonths || balance-current.Principal <= constants.BalanceEpsilon
		if final {
			// Clamp so the last row retires exactly the outstanding balance.
			current.Principal = balance
			current.RemainingBalance = 0
		} else {
			current.RemainingBalance = balance - current.Principal
		}
		current.Payment = current.Principal + current.Interest

		for _, overlay := range overlays {
			if overlay == nil {
				continue
			}
			current.Fees += overlay.PeriodFee(current, financed)
		}
		current.TotalPayment = current.Payment + current.Fees

		result.TotalPaid += current.Payment
		result.TotalFees += current.Fees
		result.Schedule = append(result.Schedule, current)
		balance = current.RemainingBalance

		if final {
			if month < in.TermMonths {
				g.logger.Debug(fmt.Sprintf("loan retired early after %d of %d payments", month, in.TermMonths),
					zap.String("op", "loans.Generate"),
					zap.Float64("extra_monthly_principal", in.ExtraMonthlyPrincipal),
				)
			}
			break
		}
	}

	result.TotalInterest = result.TotalPaid - result.PrincipalFinanced

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.Generate"),
		zap.Float64("financed", financed),
		zap.Float64("payment", payment),
		zap.Int("periods", len(result.Schedule)),
	)

	return result, nil
}

func validateLoanInput(in LoanInput) error {
	if in.TermMonths <= 0 {
		return calcerr.Invalid("term must be a positive number of months, got %d", in.TermMonths)
	}
	if in.Principal < 0 {
		return calcerr.Invalid("principal must not be negative, got %.2f", in.Principal)
	}
	if in.ExtraMonthlyPrincipal < 0 {
		return calcerr.Invalid("extra monthly principal must not be negative, got %.2f", in.ExtraMonthlyPrincipal)
	}
	if !mathutil.IsFinite(in.Principal) || !mathutil.IsFinite(in.AnnualRatePercent) {
		return calcerr.Invalid("principal and rate must be finite numbers")
	}
	if mathutil.MonthlyRate(in.AnnualRatePercent) <= -1 {
		return calcerr.Invalid("annual rate %.2f%% is below -100%% per month", in.AnnualRatePercent)
	}
	return nil
}
