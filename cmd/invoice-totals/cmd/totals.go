package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/processor"
	"github.com/rezonia/invoice-totals/internal/totals"
)

var (
	outputFile string
	timeout    time.Duration
	workers    int
)

var totalsCmd = &cobra.Command{
	Use:   "totals [files...]",
	Short: "Compute totals for invoice documents",
	Long: `Compute subtotal, tax, round-off, grand total and running balance for one
or more invoice documents, with the grand total and tax amount in words.

Supported formats:
  - JSON: .json
  - YAML: .yaml, .yml
  - XML: .xml
  - CSV: .csv (items only; the default tax rate applies)

Use "-" to read a single document from stdin.

Examples:
  invoice-totals totals invoice.json
  invoice-totals totals invoices/ -f table --workers 8
  invoice-totals totals items.csv --tax-rate 18 --rounding rupee
  cat invoice.yaml | invoice-totals totals -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	totalsCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Processing timeout for the whole batch")
	totalsCmd.Flags().IntVar(&workers, "workers", processor.DefaultWorkers, "Documents processed concurrently")
}

// TotalsResult holds the result of processing a single file
type TotalsResult struct {
	File      string           `json:"file"`
	Format    string           `json:"format,omitempty"`
	Statement *model.Statement `json:"statement,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func runTotals(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	files, contents, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	printVerbose("processing documents", zap.Int("files", len(files)), zap.Int("workers", workers))

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	batch := pipeline.ProcessBatch(ctx, contents, workers)

	results := make([]*TotalsResult, len(batch))
	failed := 0
	for i, r := range batch {
		result := &TotalsResult{
			File:      files[i],
			Format:    string(r.Format),
			Statement: r.Statement,
			Warnings:  r.Warnings,
		}
		if r.Error != nil {
			result.Error = r.Error.Error()
			failed++
			logger.Warn("document failed", zap.String("file", files[i]), zap.Error(r.Error))
		} else {
			printVerbose("document processed",
				zap.String("file", files[i]),
				zap.String("grand_total", r.Statement.Totals.GrandTotal.String()))
		}
		results[i] = result
	}

	if err := outputResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func newPipeline() (*processor.Pipeline, error) {
	policy, err := roundingPolicy()
	if err != nil {
		return nil, err
	}
	rate, err := defaultTaxRate()
	if err != nil {
		return nil, err
	}

	return processor.NewPipeline(
		processor.WithCalculator(totals.NewCalculator(totals.WithRoundingPolicy(policy))),
		processor.WithDefaultTaxRate(rate),
		processor.WithLogger(logger),
	), nil
}

// readInputs reads every file named by args; "-" reads stdin
func readInputs(stdin io.Reader, args []string) ([]string, [][]byte, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []string{"-"}, [][]byte{data}, nil
	}

	files, err := collectFiles(args)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no files found to process")
	}

	contents := make([][]byte, len(files))
	for i, file := range files {
		contents[i], err = os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read file: %w", err)
		}
	}
	return files, contents, nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			if !info.IsDir() {
				files = append(files, arg)
				continue
			}

			err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isSupportedFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() && isSupportedFile(match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".xml", ".csv":
		return true
	default:
		return false
	}
}

func outputResults(stdout io.Writer, results []*TotalsResult) error {
	w := stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(w, results)
	case "table":
		return outputTable(w, results)
	case "csv":
		return outputCSV(w, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, results []*TotalsResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w io.Writer, results []*TotalsResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tNUMBER\tSUBTOTAL\tTAX\tROUND OFF\tGRAND TOTAL\tBALANCE\tIN WORDS")
	fmt.Fprintln(tw, "----\t------\t--------\t---\t---------\t-----------\t-------\t--------")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		t := r.Statement.Totals
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.File,
			invoiceNumber(r.Statement),
			t.Subtotal.StringFixed(2),
			t.TaxAmount.StringFixed(2),
			t.RoundOff.String(),
			t.GrandTotal.StringFixed(2),
			t.CurrentBalance.StringFixed(2),
			r.Statement.GrandTotalWords,
		)
	}

	return tw.Flush()
}

func outputCSV(w io.Writer, results []*TotalsResult) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"file", "number", "format", "subtotal", "tax_rate", "tax_amount", "round_off",
		"grand_total", "previous_balance", "current_balance", "rounding_policy", "grand_total_words", "error"})

	for _, r := range results {
		if r.Error != "" {
			_ = cw.Write([]string{r.File, "", r.Format, "", "", "", "", "", "", "", "", "", r.Error})
			continue
		}

		t := r.Statement.Totals
		_ = cw.Write([]string{
			r.File,
			invoiceNumber(r.Statement),
			r.Format,
			t.Subtotal.String(),
			t.TaxRate.String(),
			t.TaxAmount.String(),
			t.RoundOff.String(),
			t.GrandTotal.String(),
			t.PreviousBalance.String(),
			t.CurrentBalance.String(),
			string(t.Policy),
			r.Statement.GrandTotalWords,
			"",
		})
	}

	cw.Flush()
	return cw.Error()
}

func invoiceNumber(s *model.Statement) string {
	if s.Invoice == nil {
		return ""
	}
	return s.Invoice.Number
}
