package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the gateway integration sells in.
const Currency = "EUR"

var ErrInvalidAmount = errors.New("amount must be a finite, non-negative number")

// Format renders an amount the way the gateway expects it: exactly two
// fractional digits, '.' as the decimal separator, no grouping. The separator
// is hard-coded so ambient locale settings can never leak a comma into the
// wire format. Rounding is half-up (3.005 -> "3.01").
func Format(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return "", ErrInvalidAmount
	}
	return decimal.NewFromFloat(amount).StringFixed(2), nil
}

// FormatDecimal renders an already-exact decimal amount under the same rules
// as Format.
func FormatDecimal(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrInvalidAmount
	}
	return amount.StringFixed(2), nil
}
