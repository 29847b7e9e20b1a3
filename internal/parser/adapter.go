package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/model"
)

// Adapter parses one document format into an Invoice
type Adapter interface {
	// Parse parses content into Invoice
	Parse(ctx context.Context, r io.Reader) (*model.Invoice, error)

	// CanParse returns true if adapter can handle this content
	CanParse(content []byte) bool

	// Format returns the format handled
	Format() model.Format
}

// Registry holds all registered adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates registry with all adapters
// Order matters: YAML accepts almost anything, so it goes last
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			NewJSONAdapter(),
			NewXMLAdapter(),
			NewCSVAdapter(),
			NewYAMLAdapter(),
		},
	}
}

// Detect identifies the adapter for content
func (r *Registry) Detect(content []byte) (Adapter, error) {
	for _, a := range r.adapters {
		if a.CanParse(content) {
			return a, nil
		}
	}
	return nil, model.NewParseError(model.FormatUnknown, "content", "unknown document format, no matching adapter found", nil)
}

// GetAdapter returns adapter for specific format
func (r *Registry) GetAdapter(format model.Format) Adapter {
	for _, a := range r.adapters {
		if a.Format() == format {
			return a
		}
	}
	return nil
}

// Parse parses content using the detected adapter
func (r *Registry) Parse(ctx context.Context, content []byte) (*model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	adapter, err := r.Detect(content)
	if err != nil {
		return nil, err
	}
	inv, err := adapter.Parse(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	inv.Format = adapter.Format()
	return inv, nil
}

// DetectFormat returns the format of content, or FormatUnknown
func DetectFormat(content []byte) model.Format {
	adapter, err := NewRegistry().Detect(content)
	if err != nil {
		return model.FormatUnknown
	}
	return adapter.Format()
}

// text holds a scalar exactly as written in the document. JSON numbers and
// strings both decode into it.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*t = text(s)
	return nil
}

// rawInvoice is the shared document shape of the JSON, YAML and XML adapters
type rawInvoice struct {
	Number          string    `json:"number" yaml:"number" xml:"Number"`
	Date            string    `json:"date" yaml:"date" xml:"Date"`
	TaxRate         text      `json:"tax_rate" yaml:"tax_rate" xml:"TaxRate"`
	PreviousBalance text      `json:"previous_balance" yaml:"previous_balance" xml:"PreviousBalance"`
	Items           []rawItem `json:"items" yaml:"items" xml:"Items>Item"`
}

type rawItem struct {
	Description string `json:"description" yaml:"description" xml:"Description"`
	Quantity    text   `json:"quantity" yaml:"quantity" xml:"Quantity"`
	Rate        text   `json:"rate" yaml:"rate" xml:"Rate"`
	Amount      text   `json:"amount" yaml:"amount" xml:"Amount"`
}

func (raw *rawInvoice) convert(format model.Format) (*model.Invoice, error) {
	inv := &model.Invoice{
		Number: strings.TrimSpace(raw.Number),
		Items:  make([]model.LineItem, 0, len(raw.Items)),
	}

	if s := strings.TrimSpace(raw.Date); s != "" {
		date, err := parseDate(s)
		if err != nil {
			return nil, model.NewParseError(format, "date", "invalid date", err)
		}
		inv.Date = &date
	}

	if s := strings.TrimSpace(string(raw.TaxRate)); s != "" {
		rate, err := money.FromString(s)
		if err != nil {
			return nil, model.NewParseError(format, "tax_rate", "invalid number", err)
		}
		inv.TaxRate = decimal.NewNullDecimal(rate)
	}

	if s := strings.TrimSpace(string(raw.PreviousBalance)); s != "" {
		balance, err := money.FromString(s)
		if err != nil {
			return nil, model.NewParseError(format, "previous_balance", "invalid number", err)
		}
		inv.PreviousBalance = balance
	}

	for i, ri := range raw.Items {
		item, err := convertItem(format, i, ri.Description, string(ri.Quantity), string(ri.Rate), string(ri.Amount))
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}

	return inv, nil
}

// convertItem builds a line item. Amount is required; rate may be omitted.
func convertItem(format model.Format, index int, description, quantity, rate, amount string) (model.LineItem, error) {
	item := model.LineItem{
		Description: strings.TrimSpace(description),
		Quantity:    strings.TrimSpace(quantity),
	}

	amount = strings.TrimSpace(amount)
	if amount == "" {
		return item, model.NewParseError(format, fmt.Sprintf("items[%d].amount", index), "missing amount", nil)
	}
	a, err := money.FromString(amount)
	if err != nil {
		return item, model.NewParseError(format, fmt.Sprintf("items[%d].amount", index), "invalid number", err)
	}
	item.Amount = a

	if rate = strings.TrimSpace(rate); rate != "" {
		r, err := money.FromString(rate)
		if err != nil {
			return item, model.NewParseError(format, fmt.Sprintf("items[%d].rate", index), "invalid number", err)
		}
		item.Rate = r
	}

	return item, nil
}

func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date: %s", s)
}
