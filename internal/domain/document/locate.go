package document

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// SupportsThermal reports whether the backend serves a thermal variant for the document.
func SupportsThermal(doc model.DocumentType) bool {
	return doc == model.DocumentTicket || doc == model.DocumentReceipt
}

// EffectiveFormat downgrades thermal to pdf for documents without a thermal variant.
func EffectiveFormat(doc model.DocumentType, format model.DocumentFormat) model.DocumentFormat {
	if format == model.FormatThermal && SupportsThermal(doc) {
		return model.FormatThermal
	}
	return model.FormatPDF
}

// EndpointFor returns the backend path, relative to the API base URL, serving the
// document binary for the order.
func EndpointFor(doc model.DocumentType, orderID string, format model.DocumentFormat) string {
	id := url.PathEscape(orderID)

	switch doc {
	case model.DocumentInvoice:
		return fmt.Sprintf("/invoices/order/%s/pdf", id)
	case model.DocumentProforma:
		return fmt.Sprintf("/proformas/order/%s/pdf", id)
	case model.DocumentTicket, model.DocumentReceipt:
		return fmt.Sprintf("/receipts/order/%s/%s", id, EffectiveFormat(doc, format))
	default:
		return fmt.Sprintf("/receipts/order/%s/pdf", id)
	}
}

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FilenameFor returns the suggested local filename for a saved document.
func FilenameFor(orderID string, doc model.DocumentType, format model.DocumentFormat) string {
	stem := strings.ToLower(string(doc))
	if stem == "" {
		stem = "document"
	}

	ext := "pdf"
	if EffectiveFormat(doc, format) == model.FormatThermal {
		ext = "bin"
	}

	return fmt.Sprintf("%s-%s.%s", stem, filenameReplacer.Replace(orderID), ext)
}
