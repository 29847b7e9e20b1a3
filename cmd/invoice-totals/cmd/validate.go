package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-totals/internal/parser"
	"github.com/rezonia/invoice-totals/internal/processor"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice documents",
	Long: `Validate one or more invoice documents before computing totals.

Checks performed:
  - Document parses (amounts are numbers, every item has an amount)
  - Tax rate present and not negative
  - Line item amounts agree with quantity x rate
  - Invoice number, date and items present (errors with --strict)

Examples:
  invoice-totals validate invoice.json
  invoice-totals validate invoices/ --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Enable strict validation (number, date and items required)")
}

// ValidationResult holds the validation outcome of a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Format   string   `json:"format,omitempty"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}
	files, contents, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	registry := parser.NewRegistry()
	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for i, file := range files {
		result := validateDocument(cmd.Context(), registry, pipeline, file, contents[i])
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
		printVerbose("document validated", zap.String("file", file), zap.Bool("valid", result.Valid))
	}

	if err := outputValidation(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateDocument(ctx context.Context, registry *parser.Registry, pipeline *processor.Pipeline, file string, data []byte) *ValidationResult {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result := &ValidationResult{
		File:     file,
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	inv, err := registry.Parse(ctx, data)
	if err != nil {
		result.Valid = false
		result.Format = string(parser.DetectFormat(data))
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Format = string(inv.Format)

	v := processor.ValidateInvoice(inv, pipeline.Calculator(), pipeline.DefaultTaxRate(), strictValidation)
	result.Valid = v.Valid()
	result.Errors = append(result.Errors, v.ErrorStrings()...)
	result.Warnings = append(result.Warnings, v.Warnings...)
	return result
}

func outputValidation(w io.Writer, results []*ValidationResult) error {
	if outputFormat == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "✓ %s: VALID\n", r.File)
		} else {
			fmt.Fprintf(w, "✗ %s: INVALID\n", r.File)
			for _, e := range r.Errors {
				fmt.Fprintf(w, "  - %s\n", e)
			}
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}
	return nil
}
