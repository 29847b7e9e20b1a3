package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	money "github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/model"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	roundingFlag string
	taxRateFlag  string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "invoice-totals",
	Short: "Compute invoice totals and rupee amounts in words",
	Long: `Invoice Totals computes subtotal, tax, round-off, grand total and running
balance for invoices, and spells amounts in words using the Indian numbering
scale (thousand, lakh, crore).

Supports:
  - Documents: JSON, YAML, XML and item-only CSV
  - Rounding: paise (two decimals, default) or rupee (whole rupees)

Examples:
  # Spell an amount
  invoice-totals words 1234567.89

  # Compute totals for invoice documents
  invoice-totals totals invoice.json invoices/ -f table

  # Whole-rupee rounding with an 18% default tax rate
  invoice-totals totals items.csv --rounding rupee --tax-rate 18

  # Validate documents
  invoice-totals validate invoice.xml --strict`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVar(&roundingFlag, "rounding", "", "Rounding policy: paise or rupee (env: INVOICE_ROUNDING)")
	rootCmd.PersistentFlags().StringVar(&taxRateFlag, "tax-rate", "", "Default tax rate in percent for documents without one (env: INVOICE_TAX_RATE)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	if roundingFlag == "" {
		roundingFlag = os.Getenv("INVOICE_ROUNDING")
	}
	if taxRateFlag == "" {
		taxRateFlag = os.Getenv("INVOICE_TAX_RATE")
	}
	if serverAddr == "" {
		serverAddr = os.Getenv("INVOICE_ADDR")
	}
}

func setupLogger() error {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// roundingPolicy resolves --rounding / INVOICE_ROUNDING
func roundingPolicy() (model.RoundingPolicy, error) {
	return model.ParseRoundingPolicy(roundingFlag)
}

// defaultTaxRate resolves --tax-rate / INVOICE_TAX_RATE
func defaultTaxRate() (decimal.Decimal, error) {
	if taxRateFlag == "" {
		return decimal.Zero, nil
	}
	rate, err := money.FromString(taxRateFlag)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", taxRateFlag, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, model.NewInvalidAmountError("tax_rate", taxRateFlag, "tax rate must not be negative")
	}
	return rate, nil
}

func printVerbose(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}
