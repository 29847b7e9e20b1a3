package server

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-totals/internal/model"
)

// WordsRequest is the request for the words endpoint
type WordsRequest struct {
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	RupeeLabel string           `json:"rupee_label,omitempty"`
	PaiseLabel string           `json:"paise_label,omitempty"`
}

// WordsResponse is the response for the words endpoint
type WordsResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Words  string          `json:"words"`
}

// TotalsRequest is the request for the totals endpoint
type TotalsRequest struct {
	Items           []model.LineItem `json:"items"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	PreviousBalance decimal.Decimal  `json:"previous_balance"`
	Rounding        string           `json:"rounding,omitempty" binding:"omitempty,oneof=paise rupee A B a b"`
}

// StatementResponse is the response for totals and process endpoints
type StatementResponse struct {
	Statement *model.Statement `json:"statement"`
	Format    string           `json:"format,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Format   string   `json:"format,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Details  string   `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
