package cmd

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-totals/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for invoice totals.

The API provides endpoints for:
  - POST /api/v1/words     - Spell an amount in words
  - POST /api/v1/totals    - Compute totals for line items
  - POST /api/v1/process   - Parse a document and compute its statement
  - POST /api/v1/validate  - Validate a document (?strict=true)
  - GET  /health           - Health check

Examples:
  # Start server on default port
  invoice-totals serve

  # Start on custom port with whole-rupee rounding
  invoice-totals serve --address :9090 --rounding rupee

  # Start in debug mode
  invoice-totals serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: INVOICE_ADDR, default :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	policy, err := roundingPolicy()
	if err != nil {
		return err
	}
	rate, err := defaultTaxRate()
	if err != nil {
		return err
	}
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	config := &server.Config{
		Address:        serverAddr,
		Rounding:       policy,
		DefaultTaxRate: rate,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		Debug:          serverDebug,
		Logger:         logger,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("address", serverAddr),
		zap.String("rounding", string(policy)),
		zap.String("default_tax_rate", rate.String()))

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
