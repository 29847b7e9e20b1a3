package parser

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/rezonia/invoice-totals/internal/model"
)

// CSVAdapter parses item-only CSV documents with a header row naming the
// columns description, quantity, rate and amount (only amount is required).
// CSV carries no tax rate; the caller's default applies.
type CSVAdapter struct{}

// NewCSVAdapter creates a new CSV adapter
func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

// Format returns the format handled
func (a *CSVAdapter) Format() model.Format {
	return model.FormatCSV
}

// CanParse checks the header row for an amount column
func (a *CSVAdapter) CanParse(content []byte) bool {
	line, _, _ := bufio.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM))).ReadLine()
	header := strings.ToLower(string(line))
	return strings.Contains(header, ",") && strings.Contains(header, "amount")
}

// Parse parses CSV rows into Invoice items
func (a *CSVAdapter) Parse(ctx context.Context, r io.Reader) (*model.Invoice, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, model.NewParseError(model.FormatCSV, "header", "failed to read header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, string(utf8BOM))))
		columns[name] = i
	}
	if _, ok := columns["amount"]; !ok {
		return nil, model.NewParseError(model.FormatCSV, "header", "missing amount column", nil)
	}

	field := func(row []string, name string) string {
		if i, ok := columns[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	inv := &model.Invoice{}
	for index := 0; ; index++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.NewParseError(model.FormatCSV, "row", "failed to read row", err)
		}

		item, err := convertItem(model.FormatCSV, index,
			field(row, "description"), field(row, "quantity"), field(row, "rate"), field(row, "amount"))
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}

	return inv, nil
}
