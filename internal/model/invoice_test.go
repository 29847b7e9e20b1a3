package model_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-totals/internal/model"
)

func TestLineItem_Extended(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
		ok       bool
	}{
		{"plain number", "10", "100", "1000", true},
		{"unit qualified", "2 Nos", "500", "1000", true},
		{"fractional", "1.5kg", "80", "120", true},
		{"thousands separator", "1,200 pcs", "2", "2400", true},
		{"no number", "lot", "100", "0", false},
		{"empty", "", "100", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := model.LineItem{Quantity: tt.quantity, Rate: decimal.RequireFromString(tt.rate)}
			got, ok := item.Extended()
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseRoundingPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    model.RoundingPolicy
		wantErr bool
	}{
		{"paise", model.RoundToPaise, false},
		{"A", model.RoundToPaise, false},
		{"", model.RoundToPaise, false},
		{"Rupee", model.RoundToRupee, false},
		{"b", model.RoundToRupee, false},
		{"bankers", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseRoundingPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknownRoundingPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoice_JSONOmitsMissingDate(t *testing.T) {
	data, err := json.Marshal(&model.Invoice{Number: "INV-1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"date"`)

	issued := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(&model.Invoice{Number: "INV-1", Date: &issued})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-01-15T00:00:00Z"`)
}

func TestInvalidAmountError(t *testing.T) {
	err := model.NewInvalidAmountError("tax_rate", "-1", "must not be negative")

	assert.Equal(t, "invalid amount for tax_rate: must not be negative (value=-1)", err.Error())
	assert.True(t, errors.Is(err, model.ErrInvalidAmount))

	wrapped := fmt.Errorf("compute totals: %w", err)
	assert.True(t, errors.Is(wrapped, model.ErrInvalidAmount))

	var target *model.InvalidAmountError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "tax_rate", target.Field)
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("bad digit")
	err := model.NewParseError(model.FormatCSV, "items[0].amount", "invalid number", cause)

	assert.Equal(t, "[csv] items[0].amount: invalid number (bad digit)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := model.NewValidationError("number", nil, "required", "missing invoice number")
	assert.Equal(t, "validation failed on number: missing invoice number (rule=required)", err.Error())
}
