package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"

	"github.com/rezonia/invoice-totals/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// xmlInvoice wraps the shared document shape with the <Invoice> root
type xmlInvoice struct {
	XMLName xml.Name `xml:"Invoice"`
	rawInvoice
}

// XMLAdapter parses XML invoice documents:
//
//	<Invoice>
//	  <Number>INV-1</Number>
//	  <TaxRate>18</TaxRate>
//	  <Items><Item><Description>..</Description><Amount>1000</Amount></Item></Items>
//	</Invoice>
type XMLAdapter struct{}

// NewXMLAdapter creates a new XML adapter
func NewXMLAdapter() *XMLAdapter {
	return &XMLAdapter{}
}

// Format returns the format handled
func (a *XMLAdapter) Format() model.Format {
	return model.FormatXML
}

// CanParse checks for an XML document
func (a *XMLAdapter) CanParse(content []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(content, utf8BOM))
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// Parse parses an XML document into Invoice
func (a *XMLAdapter) Parse(ctx context.Context, r io.Reader) (*model.Invoice, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.FormatXML, "content", "failed to read content", err)
	}

	var doc xmlInvoice
	if err := xml.Unmarshal(bytes.TrimPrefix(content, utf8BOM), &doc); err != nil {
		return nil, model.NewParseError(model.FormatXML, "xml", "failed to parse XML", err)
	}
	return doc.convert(model.FormatXML)
}
