package processor

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/parser"
	"github.com/rezonia/invoice-totals/internal/totals"
	"github.com/rezonia/invoice-totals/internal/words"
)

// DefaultWorkers is the batch fan-out used when workers <= 0
const DefaultWorkers = 4

// Result is the outcome of processing one document. Exactly one of
// Statement and Error is set.
type Result struct {
	Statement *model.Statement
	Format    model.Format
	Warnings  []string
	Error     error
}

// OK reports whether the document produced a statement
func (r *Result) OK() bool {
	return r.Error == nil && r.Statement != nil
}

// Pipeline parses documents, computes totals and spells the amounts
type Pipeline struct {
	registry       *parser.Registry
	calculator     *totals.Calculator
	converter      *words.Converter
	defaultTaxRate decimal.Decimal
	logger         *zap.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithCalculator sets the totals calculator
func WithCalculator(c *totals.Calculator) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.calculator = c
		}
	}
}

// WithConverter sets the words converter
func WithConverter(c *words.Converter) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.converter = c
		}
	}
}

// WithRegistry sets the document adapter registry
func WithRegistry(r *parser.Registry) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithDefaultTaxRate sets the rate used for documents without their own
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(p *Pipeline) {
		p.defaultTaxRate = rate
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:       parser.NewRegistry(),
		calculator:     totals.NewCalculator(),
		converter:      words.NewConverter(),
		defaultTaxRate: decimal.Zero,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Calculator returns the pipeline's calculator
func (p *Pipeline) Calculator() *totals.Calculator {
	return p.calculator
}

// Converter returns the pipeline's words converter
func (p *Pipeline) Converter() *words.Converter {
	return p.converter
}

// DefaultTaxRate returns the rate applied to documents without their own
func (p *Pipeline) DefaultTaxRate() decimal.Decimal {
	return p.defaultTaxRate
}

// Process parses content and builds its statement
func (p *Pipeline) Process(ctx context.Context, content []byte) *Result {
	inv, err := p.registry.Parse(ctx, content)
	if err != nil {
		p.logger.Debug("parse failed", zap.Error(err))
		return &Result{Format: parser.DetectFormat(content), Error: err}
	}
	result := p.ProcessInvoice(inv)
	result.Format = inv.Format
	return result
}

// ProcessInvoice builds the statement for an already parsed invoice
func (p *Pipeline) ProcessInvoice(inv *model.Invoice) *Result {
	result := &Result{}
	if inv != nil {
		result.Format = inv.Format
		result.Warnings = CheckInvoice(inv)
	}

	t, err := p.calculator.ComputeInvoice(inv, p.defaultTaxRate)
	if err != nil {
		result.Error = err
		return result
	}

	stmt := &model.Statement{Invoice: inv, Totals: t}

	if t.GrandTotal.IsNegative() {
		result.Warnings = append(result.Warnings, "grand total is negative, amount in words omitted")
	} else if stmt.GrandTotalWords, err = p.converter.ToWords(t.GrandTotal); err != nil {
		result.Error = fmt.Errorf("grand total in words: %w", err)
		return result
	}

	if t.TaxAmount.IsNegative() {
		result.Warnings = append(result.Warnings, "tax amount is negative, tax in words omitted")
	} else if stmt.TaxAmountWords, err = p.converter.ToWords(t.TaxAmount); err != nil {
		result.Error = fmt.Errorf("tax amount in words: %w", err)
		return result
	}

	p.logger.Debug("statement built",
		zap.String("number", inv.Number),
		zap.Int("items", len(inv.Items)),
		zap.String("grand_total", t.GrandTotal.String()),
		zap.String("policy", string(t.Policy)))

	result.Statement = stmt
	return result
}

// ProcessBatch processes contents concurrently with at most workers in
// flight. Results are returned in input order; a failed document does not
// stop the others. Documents not started before ctx is done get ctx's error.
func (p *Pipeline) ProcessBatch(ctx context.Context, contents [][]byte, workers int) []*Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]*Result, len(contents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, content := range contents {
		i, content := i, content
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = &Result{Format: model.FormatUnknown, Error: err}
				return nil
			}
			results[i] = p.Process(gctx, content)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CheckInvoice returns non-fatal observations about inv
func CheckInvoice(inv *model.Invoice) []string {
	var warnings []string

	if len(inv.Items) == 0 {
		warnings = append(warnings, "invoice has no line items")
	}
	return append(warnings, amountMismatches(inv)...)
}

// amountMismatches flags items whose amount disagrees with quantity x rate.
// Amount stays authoritative; this is informational only.
func amountMismatches(inv *model.Invoice) []string {
	var warnings []string
	for i, item := range inv.Items {
		if extended, ok := item.Extended(); ok && !item.Rate.IsZero() && !extended.Round(2).Equal(item.Amount.Round(2)) {
			warnings = append(warnings, fmt.Sprintf("line item %d: amount %s differs from quantity x rate %s",
				i+1, item.Amount.StringFixed(2), extended.StringFixed(2)))
		}
	}

	return warnings
}
