package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	money "github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/words"
)

var (
	rupeeLabel string
	paiseLabel string
)

var wordsCmd = &cobra.Command{
	Use:   "words <amount>...",
	Short: "Spell amounts in words",
	Long: `Spell one or more rupee amounts in words using the Indian numbering scale.

Amounts are rounded to paise first. The paise clause appears only when the
paise part is non-zero, and the text always ends in "Only".

Examples:
  invoice-totals words 1234567.89
  invoice-totals words 10.50 --rupee-label Rupees --paise-label Paise
  invoice-totals words 100 2500000 -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().StringVar(&rupeeLabel, "rupee-label", "", "Label after the rupee words (e.g. Rupees)")
	wordsCmd.Flags().StringVar(&paiseLabel, "paise-label", "paise", "Label of the paise clause")
}

// WordsResult holds one spelled amount
type WordsResult struct {
	Amount decimal.Decimal `json:"amount"`
	Words  string          `json:"words"`
}

func runWords(cmd *cobra.Command, args []string) error {
	opts := []words.Option{words.WithPaiseLabel(paiseLabel)}
	if rupeeLabel != "" {
		opts = append(opts, words.WithRupeeLabel(rupeeLabel))
	}
	converter := words.NewConverter(opts...)

	results := make([]*WordsResult, 0, len(args))
	for _, arg := range args {
		amount, err := money.FromString(arg)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", arg, err)
		}

		text, err := converter.ToWords(amount)
		if err != nil {
			return err
		}
		printVerbose("spelled amount", zap.String("amount", arg))
		results = append(results, &WordsResult{Amount: amount, Words: text})
	}

	return outputWords(cmd.OutOrStdout(), results)
}

func outputWords(w io.Writer, results []*WordsResult) error {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "AMOUNT\tWORDS")
		fmt.Fprintln(tw, "------\t-----")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\n", r.Amount.StringFixed(2), r.Words)
		}
		return tw.Flush()
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"amount", "words"})
		for _, r := range results {
			_ = cw.Write([]string{r.Amount.StringFixed(2), r.Words})
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}
