package decimal

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-totals/internal/model"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// FromFloat converts a float amount, rejecting NaN and infinities.
// The shortest decimal representation of v is used, so 1234567.89 stays exact.
func FromFloat(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Zero, model.NewInvalidAmountError(field, v, "not a finite number")
	}
	return decimal.NewFromFloat(v), nil
}

// FromString parses an amount as written on an invoice: a plain number with
// optional thousands separators and a leading rupee sign ("₹1,23,456.78").
func FromString(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "₹")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Percentage computes: amount * (percent/100), without rounding
func Percentage(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}

// Sum sums a slice of decimals left to right
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// RoundPaise rounds to 2 places, half away from zero
func RoundPaise(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundRupee rounds to a whole rupee, half away from zero
func RoundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// SplitRupeesPaise rounds d to paise and returns the rupee and paise parts.
// A fraction that rounds up to 100 paise carries into the rupees.
// d must be non-negative and its rupee part must fit in int64.
func SplitRupeesPaise(d decimal.Decimal) (rupees, paise int64) {
	r := RoundPaise(d)
	whole := r.Truncate(0)
	return whole.IntPart(), r.Sub(whole).Mul(hundred).IntPart()
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
