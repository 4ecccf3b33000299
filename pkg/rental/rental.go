// Package rental analyzes a financed rental property by combining the
// amortization engine with the derived investment ratios.
package rental

import (
	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
	"go.uber.org/zap"
)

// Input describes a rental purchase and its first-year operation.
// Percent fields are percentages of rent.
type Input struct {
	PurchasePrice      float64
	DownPayment        float64
	ClosingCosts       float64
	RehabCosts         float64
	AnnualRatePercent  float64
	TermMonths         int
	MonthlyRent        float64
	OtherMonthlyIncome float64
	VacancyPercent     float64
	AnnualPropertyTax  float64
	AnnualInsurance    float64
	MonthlyHOA         float64
	MaintenancePercent float64
	ManagementPercent  float64
	LandValue          float64
}

// Result is the first-year analysis of a rental. Ratios are decimals.
type Result struct {
	LoanAmount           float64                    `json:"loanAmount"`
	MonthlyDebtService   float64                    `json:"monthlyDebtService"`
	GrossScheduledIncome float64                    `json:"grossScheduledIncome"`
	EffectiveGrossIncome float64                    `json:"effectiveGrossIncome"`
	OperatingExpenses    float64                    `json:"operatingExpenses"`
	NetOperatingIncome   float64                    `json:"netOperatingIncome"`
	AnnualDebtService    float64                    `json:"annualDebtService"`
	AnnualCashFlow       float64                    `json:"annualCashFlow"`
	MonthlyCashFlow      float64                    `json:"monthlyCashFlow"`
	TotalCashInvested    float64                    `json:"totalCashInvested"`
	CapRate              float64                    `json:"capRate"`
	CashOnCash           float64                    `json:"cashOnCash"`
	DSCR                 float64                    `json:"dscr"`
	BreakEvenOccupancy   float64                    `json:"breakEvenOccupancy"`
	OnePercentRatio      float64                    `json:"onePercentRatio"`
	PassesOnePercentRule bool                       `json:"passesOnePercentRule"`
	FiftyPercentCashFlow float64                    `json:"fiftyPercentCashFlow"`
	GrossRentMultiplier  float64                    `json:"grossRentMultiplier"`
	AnnualDepreciation   float64                    `json:"annualDepreciation"`
	Depreciation         []metrics.DepreciationYear `json:"depreciation"`
	Loan                 loans.Result               `json:"loan"`
}

// Analyzer runs rental analyses.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil logger disables logging.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze computes a rental analysis without logging.
func Analyze(in Input) (Result, error) {
	return NewAnalyzer(nil).Analyze(in)
}

// Analyze amortizes the purchase loan and derives income, cash flow and the
// investment ratios. A purchase with no loan has zero debt service and a DSCR
// of 0.
func (a *Analyzer) Analyze(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	var result Result
	result.LoanAmount = in.PurchasePrice - in.DownPayment

	if result.LoanAmount > 0 {
		loan, err := loans.NewScheduleGenerator(a.logger).Generate(loans.LoanInput{
			Principal:         result.LoanAmount,
			AnnualRatePercent: in.AnnualRatePercent,
			TermMonths:        in.TermMonths,
		})
		if err != nil {
			return Result{}, err
		}
		result.Loan = loan
		result.MonthlyDebtService = loan.Payment
		result.AnnualDebtService = loan.Payment * constants.MonthsPerYear
	} else {
		result.Loan = loans.Result{Schedule: []loans.Period{}}
	}

	monthlyIncome := in.MonthlyRent + in.OtherMonthlyIncome
	result.GrossScheduledIncome = monthlyIncome * constants.MonthsPerYear
	result.EffectiveGrossIncome = result.GrossScheduledIncome - mathutil.ApplyPercentage(result.GrossScheduledIncome, in.VacancyPercent)

	annualRent := in.MonthlyRent * constants.MonthsPerYear
	collectedRent := annualRent - mathutil.ApplyPercentage(annualRent, in.VacancyPercent)
	result.OperatingExpenses = in.AnnualPropertyTax +
		in.AnnualInsurance +
		in.MonthlyHOA*constants.MonthsPerYear +
		mathutil.ApplyPercentage(annualRent, in.MaintenancePercent) +
		mathutil.ApplyPercentage(collectedRent, in.ManagementPercent)

	result.NetOperatingIncome = result.EffectiveGrossIncome - result.OperatingExpenses
	result.AnnualCashFlow = result.NetOperatingIncome - result.AnnualDebtService
	result.MonthlyCashFlow = result.AnnualCashFlow / constants.MonthsPerYear
	result.TotalCashInvested = in.DownPayment + in.ClosingCosts + in.RehabCosts

	result.CapRate = metrics.CapRate(result.NetOperatingIncome, in.PurchasePrice)
	result.CashOnCash = metrics.CashOnCash(result.AnnualCashFlow, result.TotalCashInvested)
	result.DSCR = metrics.DSCR(result.NetOperatingIncome, result.AnnualDebtService)
	result.BreakEvenOccupancy = metrics.BreakEvenOccupancy(result.OperatingExpenses, result.AnnualDebtService, result.GrossScheduledIncome)
	result.OnePercentRatio = metrics.OnePercentRule(in.MonthlyRent, in.PurchasePrice)
	result.PassesOnePercentRule = metrics.PassesOnePercentRule(in.MonthlyRent, in.PurchasePrice)
	result.FiftyPercentCashFlow = metrics.FiftyPercentRule(in.MonthlyRent, result.MonthlyDebtService)
	result.GrossRentMultiplier = metrics.GrossRentMultiplier(in.PurchasePrice, annualRent)

	basis := in.PurchasePrice + in.ClosingCosts + in.RehabCosts - in.LandValue
	result.AnnualDepreciation = metrics.StraightLineDepreciation(basis)
	result.Depreciation = metrics.DepreciationSchedule(basis)

	a.logger.Debug("analyzed rental property",
		zap.String("op", "rental.Analyze"),
		zap.Float64("noi", result.NetOperatingIncome),
		zap.Float64("annual_cash_flow", result.AnnualCashFlow),
	)
	return result, nil
}

func validate(in Input) error {
	if in.PurchasePrice <= 0 {
		return calcerr.Invalid("purchase price must be positive, got %.2f", in.PurchasePrice)
	}
	if in.DownPayment < 0 || in.DownPayment > in.PurchasePrice {
		return calcerr.Invalid("down payment %.2f must be between 0 and the purchase price", in.DownPayment)
	}
	if in.LandValue < 0 || in.LandValue > in.PurchasePrice {
		return calcerr.Invalid("land value %.2f must be between 0 and the purchase price", in.LandValue)
	}
	for _, pct := range []float64{in.VacancyPercent, in.MaintenancePercent, in.ManagementPercent} {
		if pct < 0 || pct > constants.PercentageMultiplier {
			return calcerr.Invalid("rent percentage %.2f must be between 0 and 100", pct)
		}
	}
	for _, amount := range []float64{in.ClosingCosts, in.RehabCosts, in.MonthlyRent, in.OtherMonthlyIncome, in.AnnualPropertyTax, in.AnnualInsurance, in.MonthlyHOA} {
		if amount < 0 {
			return calcerr.Invalid("amounts must not be negative, got %.2f", amount)
		}
	}
	return nil
}
