// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatValue renders a metric according to its unit.
func FormatValue(m calculator.Metric) string {
	switch m.Unit {
	case calculator.UnitCurrency:
		return format.Currency(m.Value)
	case calculator.UnitPercent:
		return format.Percent(m.Value)
	case calculator.UnitMonths:
		return format.Months(m.Value)
	default:
		return format.Number(m.Value)
	}
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, reports []calculator.Report) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	for i, report := range reports {
		ew.printf("--- Results for calculation %s (%s) ---\n", report.Name, report.Type)

		width := 0
		for _, m := range report.Summary {
			width = max(width, len(m.Label))
		}
		for _, m := range report.Summary {
			ew.printf("%-*s | %s\n", width, m.Label, FormatValue(m))
		}
		for _, note := range report.Notes {
			ew.printf("Note: %s\n", note)
		}

		if len(report.Schedule) > 0 {
			ew.printf("\nPeriod | Date    | Payment      | Principal    | Interest     | Fees       | Balance\n")
			ew.printf("______ | _______ | ____________ | ____________ | ____________ | __________ | _____________\n")
			for _, period := range report.Schedule {
				ew.write(p.Sprintf("%6d | %s | %12.2f | %12.2f | %12.2f | %10.2f | %13.2f\n",
					period.Index, datetime.FormatMonth(period.Date), period.Payment,
					period.Principal, period.Interest, period.Fees, period.RemainingBalance))
			}
		}

		if len(report.Yearly) > 0 {
			ew.printf("\nYear | Contribution | Growth       | Balance\n")
			ew.printf("____ | ____________ | ____________ | _____________\n")
			for _, row := range report.Yearly {
				ew.write(p.Sprintf("%4d | %12.2f | %12.2f | %13.2f\n",
					row.Year, row.Contribution, row.Growth, row.EndingBalance))
			}
		}

		if len(report.Depreciation) > 0 {
			ew.printf("\nYear | Deduction    | Accumulated  | Remaining basis\n")
			ew.printf("____ | ____________ | ____________ | _______________\n")
			for _, row := range report.Depreciation {
				ew.write(p.Sprintf("%4d | %12.2f | %12.2f | %15.2f\n",
					row.Year, row.Deduction, row.Accumulated, row.RemainingBase))
			}
		}

		if i < len(reports)-1 {
			ew.printf("\n")
		}
	}
	return ew.err
}

// CsvFormat writes one row per summary metric, followed by each report's
// schedule when present.
func CsvFormat(w io.Writer, reports []calculator.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"calculation", "type", "metric", "value", "unit"}); err != nil {
		return err
	}
	for _, report := range reports {
		for _, m := range report.Summary {
			record := []string{report.Name, report.Type, m.Label, strconv.FormatFloat(m.Value, 'f', -1, 64), string(m.Unit)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		if len(report.Notes) > 0 {
			if err := cw.Write([]string{report.Name, report.Type, "notes", strings.Join(report.Notes, "; "), ""}); err != nil {
				return err
			}
		}
	}

	for _, report := range reports {
		if len(report.Schedule) == 0 {
			continue
		}
		if err := cw.Write(nil); err != nil {
			return err
		}
		if err := cw.Write([]string{"calculation", "period", "date", "payment", "principal", "interest", "fees", "balance"}); err != nil {
			return err
		}
		for _, period := range report.Schedule {
			record := []string{
				report.Name,
				strconv.Itoa(period.Index),
				datetime.FormatMonth(period.Date),
				formatAmount(period.Payment),
				formatAmount(period.Principal),
				formatAmount(period.Interest),
				formatAmount(period.Fees),
				formatAmount(period.RemainingBalance),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CsvFormat output as a string.
func CsvString(reports []calculator.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, reports); err != nil {
		return ""
	}
	return buf.String()
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	ew.write(fmt.Sprintf(format, args...))
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
