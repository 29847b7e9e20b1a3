// Package words spells rupee amounts in English using the Indian numbering
// scale (thousand, lakh, crore).
//
// The output always ends in "Only" and carries an "and ... paise" clause only
// when the paise part is non-zero:
//
//	words.ToWords(decimal.RequireFromString("1234567.89"))
//	// Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven and Eighty Nine paise Only
package words

import (
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/model"
)

// MaxAmount is the exclusive upper bound of amounts the converter accepts
var MaxAmount = decimal.New(1, 18)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scales is ordered largest first; the multiplier of each group is spelled recursively
var scales = []struct {
	divisor int64
	word    string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// Option configures a Converter
type Option func(*Converter)

// WithRupeeLabel appends label after the rupee words ("Rupees")
func WithRupeeLabel(label string) Option {
	return func(c *Converter) {
		c.rupeeLabel = label
	}
}

// WithPaiseLabel replaces the default "paise" label of the paise clause
func WithPaiseLabel(label string) Option {
	return func(c *Converter) {
		c.paiseLabel = label
	}
}

// Converter turns amounts into words. It is immutable and safe for concurrent use.
type Converter struct {
	rupeeLabel string
	paiseLabel string
}

// NewConverter creates a converter. With no options the output has no rupee
// label and a lowercase "paise" clause.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{paiseLabel: "paise"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// ToWords converts amount with the default converter
func ToWords(amount decimal.Decimal) (string, error) {
	return defaultConverter.ToWords(amount)
}

// ToWords converts a non-negative amount to words. The amount is rounded to
// paise first.
func (c *Converter) ToWords(amount decimal.Decimal) (string, error) {
	if !money.IsNonNegative(amount) {
		return "", model.NewInvalidAmountError("amount", amount.String(), "must not be negative")
	}
	if money.RoundPaise(amount).GreaterThanOrEqual(MaxAmount) {
		return "", model.NewInvalidAmountError("amount", amount.String(), "exceeds supported range")
	}

	rupees, paise := money.SplitRupeesPaise(amount)

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(Spell(rupees))
	}
	if c.rupeeLabel != "" {
		b.WriteString(" ")
		b.WriteString(c.rupeeLabel)
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(Spell(paise))
		if c.paiseLabel != "" {
			b.WriteString(" ")
			b.WriteString(c.paiseLabel)
		}
	}
	b.WriteString(" Only")
	return b.String(), nil
}

// FloatToWords converts a float amount; NaN and infinities are rejected
func (c *Converter) FloatToWords(amount float64) (string, error) {
	d, err := money.FromFloat("amount", amount)
	if err != nil {
		return "", err
	}
	return c.ToWords(d)
}

// Spell returns the words for n >= 0 without any suffix; 0 yields "".
func Spell(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	}

	for _, s := range scales {
		if n < s.divisor {
			continue
		}
		head := Spell(n/s.divisor) + " " + s.word
		if rem := n % s.divisor; rem > 0 {
			return head + " " + Spell(rem)
		}
		return head
	}
	return ""
}
