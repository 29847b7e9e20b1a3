package parser

import (
	"bytes"
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rezonia/invoice-totals/internal/model"
)

// YAMLAdapter parses YAML invoice documents
type YAMLAdapter struct{}

// NewYAMLAdapter creates a new YAML adapter
func NewYAMLAdapter() *YAMLAdapter {
	return &YAMLAdapter{}
}

// Format returns the format handled
func (a *YAMLAdapter) Format() model.Format {
	return model.FormatYAML
}

// CanParse checks for a top-level items key
func (a *YAMLAdapter) CanParse(content []byte) bool {
	content = bytes.TrimPrefix(content, utf8BOM)
	return bytes.HasPrefix(content, []byte("items:")) ||
		bytes.Contains(content, []byte("\nitems:")) ||
		bytes.HasPrefix(bytes.TrimSpace(content), []byte("---"))
}

// Parse parses a YAML document into Invoice
func (a *YAMLAdapter) Parse(ctx context.Context, r io.Reader) (*model.Invoice, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.FormatYAML, "content", "failed to read content", err)
	}

	var raw rawInvoice
	dec := yaml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, model.NewParseError(model.FormatYAML, "yaml", "failed to parse YAML", err)
	}
	return raw.convert(model.FormatYAML)
}
