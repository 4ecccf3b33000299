package datetime

import (
	"testing"
	"time"
)

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{"Month layout", "2025-03", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), false},
		{"Day layout", "2025-03-15", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"Empty uses fallback month", "", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), false},
		{"Whitespace trimmed", " 2024-12 ", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), false},
		{"Garbage", "03/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.value, fallback)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.value, err)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.value, result, tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"Simple", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"End of month clamps", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"Leap year clamps", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"Cross year", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 8, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"Backward", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), -8, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"Zero", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 0, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := AddMonths(tt.start, tt.months); !result.Equal(tt.expected) {
				t.Errorf("AddMonths() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPaymentDate(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := PaymentDate(start, 1); !got.Equal(start) {
		t.Errorf("first payment should fall on start, got %v", got)
	}
	if got := PaymentDate(start, 13); !got.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("thirteenth payment = %v", got)
	}
	if got := PaymentDate(time.Time{}, 5); !got.IsZero() {
		t.Errorf("zero start should produce zero date, got %v", got)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(time.Time{}); got != "" {
		t.Errorf("FormatMonth(zero) = %q", got)
	}
	if got := FormatMonth(time.Date(2030, 7, 4, 0, 0, 0, 0, time.UTC)); got != "2030-07" {
		t.Errorf("FormatMonth() = %q", got)
	}
}
