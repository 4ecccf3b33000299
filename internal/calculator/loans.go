package calculator

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
	"github.com/iwvelando/finance-calculators/pkg/rental"
)

func (r *Runner) generator() *loans.ScheduleGenerator {
	return loans.NewScheduleGenerator(r.logger)
}

func (r *Runner) homeLoan(calc config.Calculation) (loans.HomeLoan, error) {
	start, err := calc.StartTime(r.now())
	if err != nil {
		return loans.HomeLoan{}, err
	}
	return loans.HomeLoan{
		HomePrice:             calc.HomePrice,
		DownPayment:           calc.DownPayment,
		AnnualRatePercent:     calc.Rate,
		TermMonths:            calc.Term(),
		StartDate:             start,
		MonthlyTax:            calc.MonthlyTax,
		MonthlyInsurance:      calc.Insurance,
		MonthlyHOA:            calc.HOA,
		ExtraMonthlyPrincipal: calc.ExtraPrincipal,
	}, nil
}

func (r *Runner) loan(calc config.Calculation) (Report, error) {
	start, err := calc.StartTime(r.now())
	if err != nil {
		return Report{}, err
	}
	result, err := r.generator().Generate(loans.LoanInput{
		Principal:             calc.Principal,
		AnnualRatePercent:     calc.Rate,
		TermMonths:            calc.Term(),
		StartDate:             start,
		ExtraMonthlyPrincipal: calc.ExtraPrincipal,
	})
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Monthly payment", result.Payment, UnitCurrency)
	report.add("Total interest", result.TotalInterest, UnitCurrency)
	report.add("Total paid", result.TotalPaid, UnitCurrency)
	report.add("Payoff months", float64(result.PayoffMonths()), UnitMonths)
	if len(result.Schedule) == 0 {
		report.note("No loan needed")
	} else if result.PayoffMonths() < calc.Term() {
		report.note(fmt.Sprintf("Extra principal retires the loan %d months early", calc.Term()-result.PayoffMonths()))
	}
	report.Schedule = result.Schedule
	return report, nil
}

func mortgageReport(result loans.MortgageResult) Report {
	var report Report
	report.add("Loan amount", result.LoanAmount, UnitCurrency)
	if result.FinancedAmount != result.LoanAmount {
		report.add("Financed amount", result.FinancedAmount, UnitCurrency)
	}
	if result.UpfrontFee > 0 {
		report.add("Upfront fee", result.UpfrontFee, UnitCurrency)
	}
	report.add("Loan to value", result.LoanToValuePercent/constants.PercentageMultiplier, UnitPercent)
	report.add("Principal and interest", result.MonthlyPrincipalInterest, UnitCurrency)
	report.add("Property tax", result.MonthlyTax, UnitCurrency)
	report.add("Homeowners insurance", result.MonthlyInsurance, UnitCurrency)
	report.add("HOA", result.MonthlyHOA, UnitCurrency)
	report.add("Mortgage insurance", result.MonthlyMortgageInsurance, UnitCurrency)
	report.add("Total monthly payment", result.TotalMonthlyPayment, UnitCurrency)
	report.add("Total interest", result.Loan.TotalInterest, UnitCurrency)
	report.add("Total of payments", result.TotalOfPayments, UnitCurrency)
	if result.MortgageInsuranceMonths > 0 {
		report.add("Mortgage insurance months", float64(result.MortgageInsuranceMonths), UnitMonths)
	}
	report.Schedule = result.Loan.Schedule
	return report
}

func (r *Runner) mortgage(calc config.Calculation) (Report, error) {
	home, err := r.homeLoan(calc)
	if err != nil {
		return Report{}, err
	}
	result, err := r.generator().Mortgage(loans.MortgageInput{
		HomeLoan:         home,
		PMIRatePercent:   calc.PMIRate,
		PMICutoffPercent: calc.PMICutoff,
	})
	if err != nil {
		return Report{}, err
	}

	report := mortgageReport(result)
	if result.LoanToValuePercent > constants.PMIRequiredAboveLTV && calc.PMIRate == 0 {
		report.note("Loan to value is above 80% but no PMI rate was given")
	}
	return report, nil
}

func (r *Runner) fha(calc config.Calculation) (Report, error) {
	home, err := r.homeLoan(calc)
	if err != nil {
		return Report{}, err
	}
	result, err := r.generator().FHA(loans.FHAInput{
		HomeLoan:          home,
		UpfrontMIPPercent: calc.UpfrontMIP,
		AnnualMIPPercent:  calc.AnnualMIP,
	})
	if err != nil {
		return Report{}, err
	}
	report := mortgageReport(result)
	report.note("FHA annual MIP is charged for the life of the loan")
	return report, nil
}

func (r *Runner) va(calc config.Calculation) (Report, error) {
	home, err := r.homeLoan(calc)
	if err != nil {
		return Report{}, err
	}
	purpose, err := loans.ParseVALoanPurpose(calc.VAPurpose)
	if err != nil {
		return Report{}, err
	}
	result, err := r.generator().VA(loans.VAInput{
		HomeLoan:   home,
		Purpose:    purpose,
		FirstUse:   calc.IsFirstUse(),
		Disabled:   calc.Disabled,
		FinanceFee: calc.FinanceFee,
	})
	if err != nil {
		return Report{}, err
	}

	report := mortgageReport(result)
	switch {
	case calc.Disabled:
		report.note("Funding fee waived for service-connected disability")
	case !result.UpfrontFeeFinanced && result.UpfrontFee > 0:
		report.note("Funding fee paid at closing")
	}
	return report, nil
}

func (r *Runner) refinance(calc config.Calculation) (Report, error) {
	start, err := calc.StartTime(r.now())
	if err != nil {
		return Report{}, err
	}
	result, err := loans.CalculateRefinance(loans.RefinanceInput{
		CurrentBalance:      calc.CurrentBalance,
		CurrentRatePercent:  calc.CurrentRate,
		RemainingMonths:     calc.RemainingMonths,
		NewRatePercent:      calc.NewRate,
		NewTermMonths:       calc.NewTermMonths,
		ClosingCosts:        calc.ClosingCosts,
		FinanceClosingCosts: calc.FinanceClosingCosts,
		StartDate:           start,
	})
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Current payment", result.CurrentPayment, UnitCurrency)
	report.add("New payment", result.NewPayment, UnitCurrency)
	report.add("Monthly savings", result.MonthlySavings, UnitCurrency)
	report.add("Current remaining interest", result.CurrentRemainingInterest, UnitCurrency)
	report.add("New total interest", result.NewTotalInterest, UnitCurrency)
	report.add("Lifetime savings", result.LifetimeSavings, UnitCurrency)
	if result.BreakEvenMonths == metrics.NeverBreaksEven {
		report.note("The new loan never recovers its closing costs")
	} else {
		report.add("Break-even months", result.BreakEvenMonths, UnitMonths)
	}
	report.Schedule = result.NewLoan.Schedule
	return report, nil
}

func apr(calc config.Calculation) (Report, error) {
	result, err := loans.SolveAPR(calc.Principal, calc.Fees, calc.Rate, calc.Term())
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("APR", result.APRPercent/constants.PercentageMultiplier, UnitPercent)
	report.add("Note rate", calc.Rate/constants.PercentageMultiplier, UnitPercent)
	report.add("Monthly payment", result.Payment, UnitCurrency)
	report.add("Net proceeds", result.NetProceeds, UnitCurrency)
	report.add("Solver iterations", float64(result.Iterations), UnitNumber)
	return report, nil
}

func (r *Runner) rental(calc config.Calculation) (Report, error) {
	result, err := rental.NewAnalyzer(r.logger).Analyze(rental.Input{
		PurchasePrice:      calc.HomePrice,
		DownPayment:        calc.DownPayment,
		ClosingCosts:       calc.ClosingCosts,
		RehabCosts:         calc.RehabCosts,
		AnnualRatePercent:  calc.Rate,
		TermMonths:         calc.Term(),
		MonthlyRent:        calc.MonthlyRent,
		OtherMonthlyIncome: calc.OtherMonthlyIncome,
		VacancyPercent:     calc.Vacancy,
		AnnualPropertyTax:  calc.AnnualPropertyTax,
		AnnualInsurance:    calc.AnnualInsurance,
		MonthlyHOA:         calc.HOA,
		MaintenancePercent: calc.Maintenance,
		ManagementPercent:  calc.Management,
		LandValue:          calc.LandValue,
	})
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Monthly debt service", result.MonthlyDebtService, UnitCurrency)
	report.add("Effective gross income", result.EffectiveGrossIncome, UnitCurrency)
	report.add("Operating expenses", result.OperatingExpenses, UnitCurrency)
	report.add("Net operating income", result.NetOperatingIncome, UnitCurrency)
	report.add("Monthly cash flow", result.MonthlyCashFlow, UnitCurrency)
	report.add("Cap rate", result.CapRate, UnitPercent)
	report.add("Cash on cash", result.CashOnCash, UnitPercent)
	report.add("DSCR", result.DSCR, UnitNumber)
	report.add("Break-even occupancy", result.BreakEvenOccupancy, UnitPercent)
	report.add("Gross rent multiplier", result.GrossRentMultiplier, UnitNumber)
	report.add("50% rule cash flow", result.FiftyPercentCashFlow, UnitCurrency)
	report.add("Annual depreciation", result.AnnualDepreciation, UnitCurrency)
	if result.PassesOnePercentRule {
		report.note("Meets the 1% rule")
	} else {
		report.note(fmt.Sprintf("Rent is %.2f%% of price, below the 1%% rule", result.OnePercentRatio*constants.PercentageMultiplier))
	}
	report.Schedule = result.Loan.Schedule
	report.Depreciation = result.Depreciation
	return report, nil
}
