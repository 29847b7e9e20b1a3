package invoicelib

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
)

// Pipeline processes invoice documents into statements
type Pipeline interface {
	// Process processes input and returns its statement
	Process(ctx context.Context, r io.Reader) (*StatementResult, error)

	// ProcessBatch processes multiple inputs; one result per input
	ProcessBatch(ctx context.Context, inputs []io.Reader) []*StatementResult
}

// StatementResult represents a processed document. Err is set instead of
// Statement when the document could not be processed.
type StatementResult struct {
	Statement *Statement
	Format    Format
	Warnings  []string
	Err       error
}

// Options configures processor behavior
type Options struct {
	Rounding       RoundingPolicy  // default and zero value: RoundToPaise
	DefaultTaxRate decimal.Decimal // used when a document has no tax rate
	RupeeLabel     string          // e.g. "Rupees"; empty for none
	PaiseLabel     string          // default: "paise"
	Workers        int             // batch concurrency (default: 4)
}

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		Rounding:       RoundToPaise,
		DefaultTaxRate: decimal.Zero,
		PaiseLabel:     "paise",
		Workers:        4,
	}
}
