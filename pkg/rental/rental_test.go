package rental

import (
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleInput() Input {
	return Input{
		PurchasePrice:      200000,
		DownPayment:        40000,
		ClosingCosts:       5000,
		AnnualRatePercent:  7,
		TermMonths:         360,
		MonthlyRent:        2000,
		VacancyPercent:     5,
		AnnualPropertyTax:  2400,
		AnnualInsurance:    1200,
		MaintenancePercent: 5,
		ManagementPercent:  8,
		LandValue:          40000,
	}
}

func TestAnalyze(t *testing.T) {
	result, err := NewAnalyzer(zap.NewNop()).Analyze(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 160000.0, result.LoanAmount)
	assert.InDelta(t, 1064.4840, result.MonthlyDebtService, 1e-4)
	assert.InDelta(t, 24000, result.GrossScheduledIncome, 1e-9)
	assert.InDelta(t, 22800, result.EffectiveGrossIncome, 1e-9)
	assert.InDelta(t, 6624, result.OperatingExpenses, 1e-9)
	assert.InDelta(t, 16176, result.NetOperatingIncome, 1e-9)
	assert.InDelta(t, 3402.1921, result.AnnualCashFlow, 1e-4)
	assert.InDelta(t, 45000, result.TotalCashInvested, 1e-9)

	assert.InDelta(t, 0.08088, result.CapRate, 1e-9)
	assert.InDelta(t, 0.0756043, result.CashOnCash, 1e-6)
	assert.InDelta(t, 1.2663413, result.DSCR, 1e-6)
	assert.InDelta(t, 0.8082420, result.BreakEvenOccupancy, 1e-6)
	assert.InDelta(t, 0.01, result.OnePercentRatio, 1e-12)
	assert.True(t, result.PassesOnePercentRule)
	assert.InDelta(t, -64.4840, result.FiftyPercentCashFlow, 1e-4)
	assert.InDelta(t, 8.3333333, result.GrossRentMultiplier, 1e-6)

	assert.InDelta(t, 6000, result.AnnualDepreciation, 1e-9)
	require.Len(t, result.Depreciation, 28)
	assert.InDelta(t, 165000, result.Depreciation[27].Accumulated, 1e-6)
	assert.Len(t, result.Loan.Schedule, 360)
}

func TestAnalyzeCashPurchase(t *testing.T) {
	in := sampleInput()
	in.DownPayment = in.PurchasePrice
	in.TermMonths = 0

	result, err := Analyze(in)
	require.NoError(t, err)

	assert.Zero(t, result.MonthlyDebtService)
	assert.Zero(t, result.DSCR)
	assert.Empty(t, result.Loan.Schedule)
	assert.InDelta(t, result.NetOperatingIncome, result.AnnualCashFlow, 1e-9)
}

func TestAnalyzeInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero price", func(in *Input) { in.PurchasePrice = 0 }},
		{"down payment above price", func(in *Input) { in.DownPayment = 250000 }},
		{"negative rent", func(in *Input) { in.MonthlyRent = -1 }},
		{"vacancy above 100", func(in *Input) { in.VacancyPercent = 101 }},
		{"land above price", func(in *Input) { in.LandValue = 300000 }},
		{"missing term", func(in *Input) { in.TermMonths = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			tt.mutate(&in)
			_, err := Analyze(in)
			assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
		})
	}
}
