package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"whole number", 3, "3.00"},
		{"zero", 0, "0.00"},
		{"one decimal place", 10.5, "10.50"},
		{"two decimal places", 7.50, "7.50"},
		{"rounds half up", 3.005, "3.01"},
		{"rounds down below half", 3.004, "3.00"},
		{"three decimal places", 5.255, "5.26"},
		{"large amount without grouping", 1234567.89, "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.amount)
			if err != nil {
				t.Fatalf("Format(%v) returned error: %v", tt.amount, err)
			}
			if got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormat_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"negative", -1.0},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.amount)
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("Format(%v) error = %v, want ErrInvalidAmount", tt.amount, err)
			}
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	got, err := FormatDecimal(decimal.RequireFromString("15.755"))
	if err != nil {
		t.Fatalf("FormatDecimal returned error: %v", err)
	}
	if got != "15.76" {
		t.Errorf("FormatDecimal(15.755) = %q, want %q", got, "15.76")
	}

	if _, err := FormatDecimal(decimal.RequireFromString("-0.01")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("FormatDecimal(-0.01) error = %v, want ErrInvalidAmount", err)
	}
}
