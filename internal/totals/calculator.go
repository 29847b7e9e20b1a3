// Package totals derives subtotal, tax, round-off, grand total and running
// balance from invoice line items.
package totals

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/model"
)

// Option configures a Calculator
type Option func(*Calculator)

// WithRoundingPolicy sets the round-off policy (default RoundToPaise). Any
// name ParseRoundingPolicy accepts is allowed; other values make Compute fail.
func WithRoundingPolicy(policy model.RoundingPolicy) Option {
	return func(c *Calculator) {
		c.policy = policy
	}
}

// Calculator derives invoice totals from line items. It holds no mutable
// state and may be shared between goroutines.
type Calculator struct {
	policy model.RoundingPolicy
	err    error
}

// NewCalculator creates a calculator
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{policy: model.RoundToPaise}
	for _, opt := range opts {
		opt(c)
	}
	c.policy, c.err = model.ParseRoundingPolicy(string(c.policy))
	return c
}

// Policy returns the configured rounding policy
func (c *Calculator) Policy() model.RoundingPolicy {
	return c.policy
}

// Compute sums item amounts, applies taxRate (a percentage) and the rounding
// policy, and carries previousBalance forward. An empty item list is valid.
// Item amounts and the previous balance may be negative; taxRate may not.
func (c *Calculator) Compute(items []model.LineItem, taxRate, previousBalance decimal.Decimal) (model.Totals, error) {
	if c.err != nil {
		return model.Totals{}, c.err
	}
	if !money.IsNonNegative(taxRate) {
		return model.Totals{}, model.NewInvalidAmountError("tax_rate", taxRate.String(), "must not be negative")
	}

	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	subtotal := money.Sum(amounts)

	taxAmount := money.Percentage(subtotal, taxRate)
	unrounded := subtotal.Add(taxAmount)
	roundOff := c.round(unrounded).Sub(unrounded)
	grandTotal := subtotal.Add(taxAmount).Add(roundOff)

	return model.Totals{
		Subtotal:        subtotal,
		TaxRate:         taxRate,
		TaxAmount:       taxAmount,
		RoundOff:        roundOff,
		GrandTotal:      grandTotal,
		PreviousBalance: previousBalance,
		CurrentBalance:  previousBalance.Add(grandTotal),
		Policy:          c.policy,
	}, nil
}

func (c *Calculator) round(d decimal.Decimal) decimal.Decimal {
	if c.policy == model.RoundToRupee {
		return money.RoundRupee(d)
	}
	return money.RoundPaise(d)
}

// ComputeFloat is Compute for callers holding float64 tax rate and balance.
// NaN and infinities are rejected rather than coerced.
func (c *Calculator) ComputeFloat(items []model.LineItem, taxRate, previousBalance float64) (model.Totals, error) {
	rate, err := money.FromFloat("tax_rate", taxRate)
	if err != nil {
		return model.Totals{}, err
	}
	balance, err := money.FromFloat("previous_balance", previousBalance)
	if err != nil {
		return model.Totals{}, err
	}
	return c.Compute(items, rate, balance)
}

// ComputeInvoice computes totals for a parsed invoice, using defaultTaxRate
// when the invoice does not carry its own.
func (c *Calculator) ComputeInvoice(inv *model.Invoice, defaultTaxRate decimal.Decimal) (model.Totals, error) {
	if inv == nil {
		return model.Totals{}, fmt.Errorf("compute totals: nil invoice")
	}
	rate := defaultTaxRate
	if inv.TaxRate.Valid {
		rate = inv.TaxRate.Decimal
	}
	totals, err := c.Compute(inv.Items, rate, inv.PreviousBalance)
	if err != nil {
		return model.Totals{}, fmt.Errorf("compute totals for invoice %q: %w", inv.Number, err)
	}
	return totals, nil
}
