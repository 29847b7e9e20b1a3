package invoicelib

import (
	"context"
	"fmt"
	"io"

	"github.com/rezonia/invoice-totals/internal/processor"
	"github.com/rezonia/invoice-totals/internal/totals"
	"github.com/rezonia/invoice-totals/internal/words"
)

// Processor implements Pipeline interface using internal processor
type Processor struct {
	pipeline *processor.Pipeline
	options  Options
}

// NewProcessor creates a new processor with the given options
func NewProcessor(opts Options) *Processor {
	var wordOpts []words.Option
	if opts.RupeeLabel != "" {
		wordOpts = append(wordOpts, words.WithRupeeLabel(opts.RupeeLabel))
	}
	if opts.PaiseLabel != "" {
		wordOpts = append(wordOpts, words.WithPaiseLabel(opts.PaiseLabel))
	}

	pipeline := processor.NewPipeline(
		processor.WithCalculator(totals.NewCalculator(totals.WithRoundingPolicy(opts.Rounding))),
		processor.WithConverter(words.NewConverter(wordOpts...)),
		processor.WithDefaultTaxRate(opts.DefaultTaxRate),
	)

	return &Processor{
		pipeline: pipeline,
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// Process processes input and returns its statement
func (p *Processor) Process(ctx context.Context, r io.Reader) (*StatementResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	result := convertResult(p.pipeline.Process(ctx, data))
	if result.Err != nil {
		return nil, result.Err
	}
	return result, nil
}

// ProcessInvoice computes the statement for an invoice built in code
func (p *Processor) ProcessInvoice(inv *Invoice) (*StatementResult, error) {
	result := convertResult(p.pipeline.ProcessInvoice(inv))
	if result.Err != nil {
		return nil, result.Err
	}
	return result, nil
}

// ProcessBatch processes multiple inputs concurrently. Each result carries
// its own error; results are in input order.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []io.Reader) []*StatementResult {
	contents := make([][]byte, len(inputs))
	readErrs := make([]error, len(inputs))
	for i, r := range inputs {
		contents[i], readErrs[i] = io.ReadAll(r)
	}

	batch := p.pipeline.ProcessBatch(ctx, contents, p.options.Workers)

	results := make([]*StatementResult, len(inputs))
	for i, r := range batch {
		if readErrs[i] != nil {
			results[i] = &StatementResult{Format: FormatUnknown, Err: fmt.Errorf("read input %d: %w", i, readErrs[i])}
			continue
		}
		results[i] = convertResult(r)
	}
	return results
}

func convertResult(r *processor.Result) *StatementResult {
	return &StatementResult{
		Statement: r.Statement,
		Format:    r.Format,
		Warnings:  r.Warnings,
		Err:       r.Error,
	}
}
