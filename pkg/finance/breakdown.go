package finance

import (
	"iter"
	"math"
)

// YearlyBreakdown is the state of a projection at the end of one year.
type YearlyBreakdown struct {
	Year                   int     `json:"year"`
	Contribution           float64 `json:"contribution"`
	CumulativeContribution float64 `json:"cumulativeContribution"`
	Growth                 float64 `json:"growth"`
	CumulativeGrowth       float64 `json:"cumulativeGrowth"`
	EndingBalance          float64 `json:"endingBalance"`
}

// Years yields one row per year of the projection, the last covering any
// partial year. Each row re-runs the projection with the horizon truncated
// to that year, so the sequence can be ranged over any number of times.
// Invalid input yields no rows; use Breakdown to get the error.
func Years(in InvestmentInput) iter.Seq[YearlyBreakdown] {
	return func(yield func(YearlyBreakdown) bool) {
		if validateInvestmentInput(in) != nil {
			return
		}

		var previous InvestmentResult
		previous.FutureValue = in.Lumpsum
		previous.TotalContributed = in.Lumpsum

		last := int(math.Ceil(in.Years))
		for year := 1; year <= last; year++ {
			truncated := in
			truncated.Years = math.Min(float64(year), in.Years)
			current := project(truncated)

			row := YearlyBreakdown{
				Year:                   year,
				Contribution:           current.TotalContributed - previous.TotalContributed,
				CumulativeContribution: current.TotalContributed,
				CumulativeGrowth:       current.TotalGrowth,
				EndingBalance:          current.FutureValue,
			}
			row.Growth = row.EndingBalance - previous.FutureValue - row.Contribution
			if !yield(row) {
				return
			}
			previous = current
		}
	}
}

// Breakdown validates the input and collects Years into a slice.
func Breakdown(in InvestmentInput) ([]YearlyBreakdown, error) {
	if err := validateInvestmentInput(in); err != nil {
		return nil, err
	}
	rows := make([]YearlyBreakdown, 0, int(math.Ceil(in.Years)))
	for row := range Years(in) {
		rows = append(rows, row)
	}
	return rows, nil
}
