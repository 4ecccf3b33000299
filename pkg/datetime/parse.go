// Package datetime provides date utilities for amortization schedules and
// calculation files.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in calculation files and is also
	// the output date format.
	DateTimeLayout = constants.DateTimeLayout

	// DayLayout is the full-date alternative accepted in calculation files.
	DayLayout = constants.DayLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate accepts either YYYY-MM or YYYY-MM-DD. An empty string yields the
// first day of the month containing fallback.
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Date(fallback.Year(), fallback.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(DayLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateTimeLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected date as %s or %s, got %q", DateTimeLayout, DayLayout, value)
	}
	return t, nil
}

// AddMonths offsets t by the given number of months, clamping the day to the
// last day of the target month so that Jan 31 + 1 month is Feb 28/29 rather
// than rolling into March.
func AddMonths(t time.Time, months int) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := firstOfMonth.AddDate(0, months, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// PaymentDate returns the due date of the given 1-based period when the first
// payment falls on start. A zero start yields the zero time.
func PaymentDate(start time.Time, period int) time.Time {
	if start.IsZero() {
		return time.Time{}
	}
	return AddMonths(start, period-1)
}

// FormatMonth renders t in DateTimeLayout, or "" for the zero time.
func FormatMonth(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}
