// Package format renders amounts, rates and durations for display.
package format

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded == 0 {
		rounded = 0
	}
	return printer.Sprintf("%.2f", rounded)
}

// Percent renders a decimal fraction as a percentage with three decimals
// (0.07177 becomes "7.177%").
func Percent(fraction float64) string {
	return printer.Sprintf("%.3f%%", fraction*100)
}

// Months renders a month count, keeping two decimals only when fractional.
func Months(months float64) string {
	if months == math.Trunc(months) {
		return printer.Sprintf("%d months", int64(months))
	}
	return printer.Sprintf("%.2f months", months)
}

// Number renders a plain value with up to four decimals.
func Number(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return printer.Sprintf("%d", int64(value))
	}
	return printer.Sprintf("%.4f", value)
}
