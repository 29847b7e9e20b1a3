package processor

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/totals"
)

// Validation holds the outcome of checking one invoice
type Validation struct {
	Errors   []*model.ValidationError
	Warnings []string
}

// Valid reports whether no errors were found
func (v *Validation) Valid() bool {
	return len(v.Errors) == 0
}

// ErrorStrings returns the error messages
func (v *Validation) ErrorStrings() []string {
	out := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		out = append(out, e.Error())
	}
	return out
}

// ValidateInvoice checks inv for completeness and computability. In strict
// mode the number, date and at least one item are required.
func ValidateInvoice(inv *model.Invoice, calc *totals.Calculator, defaultTaxRate decimal.Decimal, strict bool) *Validation {
	v := &Validation{}
	if inv == nil {
		v.Errors = append(v.Errors, model.NewValidationError("invoice", nil, "required", "no invoice data"))
		return v
	}

	require := func(missing bool, field, message string) {
		if !missing {
			return
		}
		if strict {
			v.Errors = append(v.Errors, model.NewValidationError(field, nil, "required", message))
		} else {
			v.Warnings = append(v.Warnings, message)
		}
	}

	require(inv.Number == "", "number", "missing invoice number")
	require(inv.Date == nil || inv.Date.IsZero(), "date", "missing invoice date")
	require(len(inv.Items) == 0, "items", "invoice has no line items")

	if !inv.TaxRate.Valid {
		v.Warnings = append(v.Warnings, "no tax rate in document, default "+defaultTaxRate.String()+"% applies")
	} else if inv.TaxRate.Decimal.IsNegative() {
		v.Errors = append(v.Errors, model.NewValidationError("tax_rate", inv.TaxRate.Decimal.String(), "gte=0", "tax rate must not be negative"))
	}

	if inv.PreviousBalance.IsNegative() {
		v.Warnings = append(v.Warnings, "previous balance is negative (credit carried forward)")
	}

	for i, item := range inv.Items {
		if item.Amount.IsNegative() {
			v.Warnings = append(v.Warnings, fmt.Sprintf("line item %d: negative amount (credit line)", i+1))
		}
	}
	v.Warnings = append(v.Warnings, amountMismatches(inv)...)

	if len(v.Errors) == 0 {
		if _, err := calc.ComputeInvoice(inv, defaultTaxRate); err != nil {
			var amountErr *model.InvalidAmountError
			if errors.As(err, &amountErr) {
				v.Errors = append(v.Errors, model.NewValidationError(amountErr.Field, amountErr.Value, "amount", amountErr.Reason))
			} else {
				v.Errors = append(v.Errors, model.NewValidationError("invoice", nil, "computable", err.Error()))
			}
		}
	}

	return v
}
