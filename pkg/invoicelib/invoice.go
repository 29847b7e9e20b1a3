// Package invoicelib provides a public API for invoice totals and rupee
// amounts in words.
//
// This package exposes the core types for computing subtotal, tax, round-off,
// grand total and running balance from line items, and for spelling amounts
// using the Indian numbering scale (thousand, lakh, crore).
//
// Example usage:
//
//	totals, err := invoicelib.ComputeTotals(items, decimal.NewFromInt(18), decimal.Zero)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, _ := invoicelib.ToWords(totals.GrandTotal)
//	fmt.Println(text) // One Thousand Seven Hundred Seventy Only
package invoicelib

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/totals"
	"github.com/rezonia/invoice-totals/internal/words"
)

// Re-export core types for public API
type (
	Invoice        = model.Invoice
	LineItem       = model.LineItem
	Totals         = model.Totals
	Statement      = model.Statement
	Format         = model.Format
	RoundingPolicy = model.RoundingPolicy
)

// Re-export rounding policies
const (
	RoundToPaise = model.RoundToPaise
	RoundToRupee = model.RoundToRupee
)

// Re-export formats
const (
	FormatJSON    = model.FormatJSON
	FormatYAML    = model.FormatYAML
	FormatXML     = model.FormatXML
	FormatCSV     = model.FormatCSV
	FormatUnknown = model.FormatUnknown
)

// Re-export error types
type (
	InvalidAmountError = model.InvalidAmountError
	ParseError         = model.ParseError
	ValidationError    = model.ValidationError
)

// ErrInvalidAmount matches every InvalidAmountError via errors.Is
var ErrInvalidAmount = model.ErrInvalidAmount

// ErrUnknownRoundingPolicy is returned when a policy name is neither paise nor rupee
var ErrUnknownRoundingPolicy = model.ErrUnknownRoundingPolicy

// ParseRoundingPolicy parses "paise"/"a" or "rupee"/"b"
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	return model.ParseRoundingPolicy(s)
}

// ToWords spells a non-negative amount, e.g. "One Lakh and Five paise Only"
func ToWords(amount decimal.Decimal) (string, error) {
	return words.ToWords(amount)
}

// ComputeTotals computes totals with the paise rounding policy
func ComputeTotals(items []LineItem, taxRate, previousBalance decimal.Decimal) (Totals, error) {
	return totals.NewCalculator().Compute(items, taxRate, previousBalance)
}

// ComputeTotalsWithPolicy computes totals with an explicit rounding policy.
// Policy names are read as by ParseRoundingPolicy.
func ComputeTotalsWithPolicy(policy RoundingPolicy, items []LineItem, taxRate, previousBalance decimal.Decimal) (Totals, error) {
	return totals.NewCalculator(totals.WithRoundingPolicy(policy)).Compute(items, taxRate, previousBalance)
}
