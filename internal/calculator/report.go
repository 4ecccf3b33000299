package calculator

import (
	"github.com/iwvelando/finance-calculators/pkg/finance"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
)

// Unit tells renderers how to display a metric value.
type Unit string

const (
	// UnitCurrency is a dollar amount.
	UnitCurrency Unit = "currency"
	// UnitPercent is a decimal fraction displayed as a percentage.
	UnitPercent Unit = "percent"
	// UnitMonths is a count of months, possibly fractional.
	UnitMonths Unit = "months"
	// UnitNumber is a plain number.
	UnitNumber Unit = "number"
)

// Metric is one labelled summary value of a report.
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Report is the rendered outcome of one calculation.
type Report struct {
	Name         string                     `json:"name"`
	Type         string                     `json:"type"`
	Summary      []Metric                   `json:"summary"`
	Schedule     []loans.Period             `json:"schedule,omitempty"`
	Yearly       []finance.YearlyBreakdown  `json:"yearly,omitempty"`
	Depreciation []metrics.DepreciationYear `json:"depreciation,omitempty"`
	Notes        []string                   `json:"notes,omitempty"`
}

func (r *Report) add(label string, value float64, unit Unit) {
	r.Summary = append(r.Summary, Metric{Label: label, Value: value, Unit: unit})
}

func (r *Report) note(note string) {
	r.Notes = append(r.Notes, note)
}

// Metric returns the summary value with the given label.
func (r Report) Metric(label string) (float64, bool) {
	for _, m := range r.Summary {
		if m.Label == label {
			return m.Value, true
		}
	}
	return 0, false
}
