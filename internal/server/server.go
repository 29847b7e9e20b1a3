package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/parser"
	"github.com/rezonia/invoice-totals/internal/processor"
	"github.com/rezonia/invoice-totals/internal/totals"
	"github.com/rezonia/invoice-totals/internal/words"
)

// Config holds server configuration
type Config struct {
	Address        string
	Rounding       model.RoundingPolicy
	DefaultTaxRate decimal.Decimal
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
	Logger         *zap.Logger
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	logger   *zap.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(requestLogger(logger))
	}

	pipeline := processor.NewPipeline(
		processor.WithCalculator(totals.NewCalculator(totals.WithRoundingPolicy(config.Rounding))),
		processor.WithDefaultTaxRate(config.DefaultTaxRate),
		processor.WithLogger(logger),
	)

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/words", s.handleWords)
		v1.POST("/totals", s.handleTotals)
		v1.POST("/process", s.handleProcess)
		v1.POST("/validate", s.handleValidate)
	}
}

// Run starts the HTTP server and shuts it down when ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"rounding": s.pipeline.Calculator().Policy(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleWords(c *gin.Context) {
	var req WordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	converter := s.pipeline.Converter()
	if req.RupeeLabel != "" || req.PaiseLabel != "" {
		opts := []words.Option{words.WithRupeeLabel(req.RupeeLabel)}
		if req.PaiseLabel != "" {
			opts = append(opts, words.WithPaiseLabel(req.PaiseLabel))
		}
		converter = words.NewConverter(opts...)
	}

	text, err := converter.ToWords(*req.Amount)
	if err != nil {
		s.respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, WordsResponse{Amount: *req.Amount, Words: text})
}

func (s *Server) handleTotals(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	pipeline := s.pipeline
	if req.Rounding != "" {
		policy, err := model.ParseRoundingPolicy(req.Rounding)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		pipeline = processor.NewPipeline(
			processor.WithCalculator(totals.NewCalculator(totals.WithRoundingPolicy(policy))),
			processor.WithConverter(s.pipeline.Converter()),
			processor.WithDefaultTaxRate(s.config.DefaultTaxRate),
			processor.WithLogger(s.logger),
		)
	}

	inv := &model.Invoice{
		Items:           req.Items,
		PreviousBalance: req.PreviousBalance,
	}
	if req.TaxRate != nil {
		inv.TaxRate = decimal.NewNullDecimal(*req.TaxRate)
	}

	result := pipeline.ProcessInvoice(inv)
	if result.Error != nil {
		s.respondError(c, result.Error, result.Warnings)
		return
	}

	c.JSON(http.StatusOK, StatementResponse{
		Statement: result.Statement,
		Warnings:  result.Warnings,
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.Process(ctx, body)
	if result.Error != nil {
		s.respondError(c, result.Error, result.Warnings)
		return
	}

	c.JSON(http.StatusOK, StatementResponse{
		Statement: result.Statement,
		Format:    string(result.Format),
		Warnings:  result.Warnings,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	inv, err := parser.NewRegistry().Parse(ctx, body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Errors: []string{err.Error()},
		})
		return
	}

	strict := c.Query("strict") == "true"
	v := processor.ValidateInvoice(inv, s.pipeline.Calculator(), s.config.DefaultTaxRate, strict)

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    v.Valid(),
		Format:   string(inv.Format),
		Errors:   v.ErrorStrings(),
		Warnings: v.Warnings,
	})
}

// Helper functions

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) respondError(c *gin.Context, err error, warnings []string) {
	var parseErr *model.ParseError
	switch {
	case errors.Is(err, model.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid amount", Details: err.Error(), Warnings: warnings})
	case errors.Is(err, model.ErrUnknownRoundingPolicy):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid rounding policy", Details: err.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid document", Details: err.Error(), Warnings: warnings})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "processing timed out"})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Details: err.Error()})
	}
}
