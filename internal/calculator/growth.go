package calculator

import (
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/finance"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/solver"
)

func (r *Runner) investment(calc config.Calculation) (Report, error) {
	in := finance.InvestmentInput{
		Lumpsum:              calc.Lumpsum,
		MonthlyContribution:  calc.MonthlyContribution,
		StepUpPercent:        calc.StepUp,
		AnnualRatePercent:    calc.Rate,
		Years:                calc.Years,
		InflationRatePercent: calc.Inflation,
		TaxRatePercent:       calc.TaxRate,
	}
	result, err := finance.NewProjector(r.logger).Project(in)
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Total contributed", result.TotalContributed, UnitCurrency)
	report.add("Future value", result.FutureValue, UnitCurrency)
	report.add("Total growth", result.TotalGrowth, UnitCurrency)
	report.add("CAGR", result.CAGR, UnitPercent)
	if calc.Inflation != 0 {
		report.add("Real value", result.RealValue, UnitCurrency)
	}
	if calc.TaxRate != 0 {
		report.add("After-tax value", result.AfterTaxValue, UnitCurrency)
	}

	if r.includeSchedules {
		for row := range finance.Years(in) {
			report.Yearly = append(report.Yearly, row)
		}
	}
	return report, nil
}

func goal(calc config.Calculation) (Report, error) {
	result, err := finance.GoalContribution(finance.GoalInput{
		Target:            calc.Target,
		CurrentSavings:    calc.CurrentSavings,
		AnnualRatePercent: calc.Rate,
		Years:             calc.Years,
	})
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Required monthly contribution", result.MonthlyContribution, UnitCurrency)
	report.add("Projected current savings", result.ProjectedSavings, UnitCurrency)
	report.add("Shortfall", result.Shortfall, UnitCurrency)
	report.add("Total contributed", result.TotalContributed, UnitCurrency)
	if result.MonthlyContribution == 0 {
		report.note("Current savings already reach the target")
	}
	return report, nil
}

func cagr(calc config.Calculation) (Report, error) {
	if calc.Years < 0 || calc.StartValue < 0 || calc.EndValue < 0 {
		return Report{}, calcerr.Invalid("values and years must not be negative")
	}
	var report Report
	report.add("CAGR", finance.CAGR(calc.StartValue, calc.EndValue, calc.Years), UnitPercent)
	report.add("Total return", finance.ROI(calc.StartValue, calc.EndValue), UnitPercent)
	return report, nil
}

func irr(calc config.Calculation) (Report, error) {
	result, err := solver.IRR(calc.CashFlows, solver.Options{Guess: calc.Guess})
	if err != nil {
		return Report{}, err
	}
	if err := result.Err(); err != nil {
		return Report{}, err
	}

	var report Report
	report.add("IRR", result.Rate, UnitPercent)
	report.add("NPV at IRR", solver.NPV(result.Rate, calc.CashFlows), UnitCurrency)
	report.add("Solver iterations", float64(result.Iterations), UnitNumber)
	return report, nil
}

func npv(calc config.Calculation) (Report, error) {
	if len(calc.CashFlows) == 0 {
		return Report{}, calcerr.Invalid("npv requires at least one cash flow")
	}
	rate := mathutil.PercentToDecimal(calc.DiscountRate)
	if rate <= -1 {
		return Report{}, calcerr.Invalid("discount rate must be greater than -100%%, got %.2f", calc.DiscountRate)
	}

	var report Report
	report.add("NPV", solver.NPV(rate, calc.CashFlows), UnitCurrency)
	report.add("Discount rate", rate, UnitPercent)
	return report, nil
}

func compound(calc config.Calculation) (Report, error) {
	compounds := calc.CompoundsPerYear
	if compounds == 0 {
		compounds = constants.MonthsPerYear
	}
	result, err := finance.CompoundInterest(calc.Principal, calc.Rate, calc.Years, compounds)
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Interest", result.Interest, UnitCurrency)
	report.add("Future value", result.FutureValue, UnitCurrency)
	report.add("Effective annual rate", mathutil.EffectiveAnnualRate(calc.Rate, compounds), UnitPercent)
	return report, nil
}

func simple(calc config.Calculation) (Report, error) {
	result, err := finance.SimpleInterest(calc.Principal, calc.Rate, calc.Years)
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("Interest", result.Interest, UnitCurrency)
	report.add("Future value", result.FutureValue, UnitCurrency)
	return report, nil
}

func roi(calc config.Calculation) (Report, error) {
	if calc.Invested <= 0 {
		return Report{}, calcerr.Invalid("amount invested must be positive, got %.2f", calc.Invested)
	}

	var report Report
	report.add("Gain", calc.Returned-calc.Invested, UnitCurrency)
	report.add("ROI", finance.ROI(calc.Invested, calc.Returned), UnitPercent)
	if calc.Years > 0 {
		report.add("Annualized ROI", finance.AnnualizedROI(calc.Invested, calc.Returned, calc.Years), UnitPercent)
	}
	return report, nil
}

func cd(calc config.Calculation) (Report, error) {
	result, err := finance.CertificateOfDeposit(finance.CDInput{
		Deposit:           calc.Principal,
		AnnualRatePercent: calc.Rate,
		TermMonths:        calc.Term(),
		CompoundsPerYear:  calc.CompoundsPerYear,
		TaxRatePercent:    calc.TaxRate,
	})
	if err != nil {
		return Report{}, err
	}

	var report Report
	report.add("APY", result.APY, UnitPercent)
	report.add("Interest", result.Interest, UnitCurrency)
	report.add("Maturity value", result.MaturityValue, UnitCurrency)
	if calc.TaxRate > 0 {
		report.add("After-tax interest", result.AfterTaxInterest, UnitCurrency)
	}
	return report, nil
}
