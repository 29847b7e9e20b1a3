package processor_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/processor"
	"github.com/rezonia/invoice-totals/internal/totals"
)

func TestValidateInvoice(t *testing.T) {
	calc := totals.NewCalculator()
	rate := decimal.NewFromInt(18)
	issued := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	complete := &model.Invoice{
		Number:  "INV-1",
		Date:    &issued,
		TaxRate: decimal.NewNullDecimal(rate),
		Items:   []model.LineItem{{Amount: decimal.NewFromInt(100)}},
	}

	tests := []struct {
		name       string
		invoice    *model.Invoice
		strict     bool
		valid      bool
		errFields  []string
		warnSubstr string
	}{
		{"complete", complete, true, true, nil, ""},
		{"nil", nil, false, false, []string{"invoice"}, ""},
		{"missing number lenient", &model.Invoice{Items: complete.Items, TaxRate: complete.TaxRate}, false, true, nil, "missing invoice number"},
		{"missing fields strict", &model.Invoice{}, true, false, []string{"number", "date", "items"}, "default 18% applies"},
		{"negative tax rate", &model.Invoice{TaxRate: decimal.NewNullDecimal(decimal.NewFromInt(-1))}, false, false, []string{"tax_rate"}, ""},
		{"credit line", &model.Invoice{Items: []model.LineItem{{Amount: decimal.NewFromInt(-5)}}}, false, true, nil, "negative amount"},
		{"negative balance", &model.Invoice{PreviousBalance: decimal.NewFromInt(-5)}, false, true, nil, "previous balance is negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := processor.ValidateInvoice(tt.invoice, calc, rate, tt.strict)
			require.NotNil(t, v)
			assert.Equal(t, tt.valid, v.Valid(), "errors: %v", v.ErrorStrings())

			fields := make([]string, 0, len(v.Errors))
			for _, e := range v.Errors {
				fields = append(fields, e.Field)
			}
			if tt.errFields == nil {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.errFields, fields)
			}

			if tt.warnSubstr != "" {
				found := false
				for _, w := range v.Warnings {
					if strings.Contains(w, tt.warnSubstr) {
						found = true
					}
				}
				assert.True(t, found, "warning %q not in %v", tt.warnSubstr, v.Warnings)
			}
		})
	}
}
