package model

// DocumentType is the commercial document an order should produce. It is derived
// on demand and never stored with the order.
type DocumentType string

const (
	DocumentTicket   DocumentType = "TICKET"
	DocumentReceipt  DocumentType = "RECEIPT"
	DocumentInvoice  DocumentType = "INVOICE"
	DocumentProforma DocumentType = "PROFORMA"
)

// DocumentTypes lists known document types in presentation order.
var DocumentTypes = []DocumentType{DocumentTicket, DocumentInvoice, DocumentProforma, DocumentReceipt}

// Valid reports whether the document type is one of the known values.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTicket, DocumentReceipt, DocumentInvoice, DocumentProforma:
		return true
	}
	return false
}

// DocumentFormat selects binary variant served by backend.
type DocumentFormat string

const (
	FormatPDF     DocumentFormat = "pdf"
	FormatThermal DocumentFormat = "thermal"
)

// Payload is an opaque document body. It is transported, never interpreted.
type Payload struct {
	Data        []byte
	ContentType string
}

// Blob is a payload held behind an object URL.
type Blob struct {
	Payload
	Filename string
}

// DocumentAction is an operator-triggered delivery mode.
type DocumentAction string

const (
	ActionOpen     DocumentAction = "open"
	ActionDownload DocumentAction = "download"
	ActionThermal  DocumentAction = "thermal"
	ActionPrint    DocumentAction = "print"
)

// Valid reports whether the action is supported.
func (a DocumentAction) Valid() bool {
	switch a {
	case ActionOpen, ActionDownload, ActionThermal, ActionPrint:
		return true
	}
	return false
}

// PrimaryAction is the recommended one-click action for an order.
type PrimaryAction struct {
	Action   DocumentAction `json:"action"`
	Document DocumentType   `json:"documentType"`
	Label    string         `json:"label"`
	Icon     string         `json:"icon"`
	Endpoint string         `json:"endpoint"`
	Filename string         `json:"filename"`
}

// MenuItem is an entry of the secondary action menu.
type MenuItem struct {
	Action  DocumentAction `json:"action"`
	Label   string         `json:"label"`
	Enabled bool           `json:"enabled"`
	Reason  string         `json:"reason,omitempty"`
}

// ActionSurface describes everything an operator UI needs to render document actions.
type ActionSurface struct {
	OrderID     string         `json:"orderId"`
	OrderNumber string         `json:"orderNumber"`
	Recommended DocumentType   `json:"recommended"`
	Rule        string         `json:"rule"`
	Primary     PrimaryAction  `json:"primary"`
	Menu        []MenuItem     `json:"menu"`
	Overrides   []DocumentType `json:"overrides"`
}
