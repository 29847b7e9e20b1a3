package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/rezonia/invoice-totals/internal/model"
)

// JSONAdapter parses JSON invoice documents
type JSONAdapter struct{}

// NewJSONAdapter creates a new JSON adapter
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// Format returns the format handled
func (a *JSONAdapter) Format() model.Format {
	return model.FormatJSON
}

// CanParse checks for a JSON object
func (a *JSONAdapter) CanParse(content []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(content, utf8BOM))
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Parse parses a JSON document into Invoice
func (a *JSONAdapter) Parse(ctx context.Context, r io.Reader) (*model.Invoice, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.FormatJSON, "content", "failed to read content", err)
	}

	var raw rawInvoice
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, model.NewParseError(model.FormatJSON, "json", "failed to parse JSON", err)
	}
	return raw.convert(model.FormatJSON)
}
