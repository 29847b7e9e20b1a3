package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Format represents the input document format
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatXML     Format = "xml"
	FormatCSV     Format = "csv"
	FormatUnknown Format = "unknown"
)

// RoundingPolicy selects how the round-off adjustment is derived
type RoundingPolicy string

const (
	// RoundToPaise rounds subtotal+tax to 2 decimal places
	RoundToPaise RoundingPolicy = "paise"
	// RoundToRupee rounds subtotal+tax to the nearest whole rupee
	RoundToRupee RoundingPolicy = "rupee"
)

// ParseRoundingPolicy accepts "paise"/"a" and "rupee"/"b", case-insensitive.
// The empty string selects RoundToPaise.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paise", "a", "":
		return RoundToPaise, nil
	case "rupee", "b":
		return RoundToRupee, nil
	default:
		return "", fmt.Errorf("%w %q (want paise or rupee)", ErrUnknownRoundingPolicy, s)
	}
}

// Invoice is an input document: ordered line items plus the invoice-level tax context
type Invoice struct {
	Number string     `json:"number,omitempty"`
	Date   *time.Time `json:"date,omitempty"` // nil when the document has none

	Items []LineItem `json:"items"`

	// TaxRate is a percentage; invalid when the document does not carry one
	TaxRate         decimal.NullDecimal `json:"tax_rate"`
	PreviousBalance decimal.Decimal     `json:"previous_balance"`

	Format     Format `json:"format,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}

// LineItem represents one billable entry. Amount is authoritative.
type LineItem struct {
	Description string          `json:"description,omitempty"`
	Quantity    string          `json:"quantity,omitempty"` // "2 Nos", "1.5 kg"
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Extended returns quantity x rate when the quantity text starts with a number.
// It is informational only; totals always sum Amount.
func (li LineItem) Extended() (decimal.Decimal, bool) {
	qty, ok := leadingNumber(li.Quantity)
	if !ok {
		return decimal.Zero, false
	}
	return qty.Mul(li.Rate), true
}

func leadingNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' || (end == 0 && c == '-') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s[:end], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Totals is the derived set of figures for one invoice
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	RoundOff        decimal.Decimal `json:"round_off"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	Policy          RoundingPolicy  `json:"rounding_policy"`
}

// Statement is everything a renderer needs for the totals block of an invoice
type Statement struct {
	Invoice         *Invoice `json:"invoice,omitempty"`
	Totals          Totals   `json:"totals"`
	GrandTotalWords string   `json:"grand_total_words,omitempty"`
	TaxAmountWords  string   `json:"tax_amount_words,omitempty"`
}
