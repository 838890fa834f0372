package document

import (
	"slices"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

type presentation struct {
	action model.DocumentAction
	label  string
	icon   string
}

var primaryByType = map[model.DocumentType]presentation{
	model.DocumentTicket:   {action: model.ActionPrint, label: "Print ticket", icon: "receipt"},
	model.DocumentReceipt:  {action: model.ActionPrint, label: "Print receipt", icon: "receipt_long"},
	model.DocumentInvoice:  {action: model.ActionOpen, label: "Download invoice", icon: "description"},
	model.DocumentProforma: {action: model.ActionOpen, label: "Download proforma", icon: "request_quote"},
}

// ThermalAvailable reports whether a thermal print may be offered for the order.
func ThermalAvailable(order model.Order) bool {
	return isPOSSale(order.Type) && order.PaymentStatus == model.PaymentStatusPaid
}

// OverrideOptions lists the document types an operator may pick instead of the
// recommendation. The recommendation itself is always present.
func OverrideOptions(order model.Order) []model.DocumentType {
	notProforma := order.Type != model.OrderTypeProforma
	status := order.PaymentStatus

	allowed := map[model.DocumentType]bool{
		model.DocumentTicket:  status == model.PaymentStatusPaid && notProforma,
		model.DocumentInvoice: notProforma && status != model.PaymentStatusCancelled,
		model.DocumentProforma: order.Type == model.OrderTypeProforma ||
			status == model.PaymentStatusUnpaid ||
			status == model.PaymentStatusPartiallyPaid ||
			status == model.PaymentStatusCredit,
		model.DocumentReceipt: notProforma && (status == model.PaymentStatusPaid ||
			status == model.PaymentStatusPartiallyPaid ||
			order.HasCompletedPayment()),
	}
	allowed[Classify(order).Type] = true

	options := make([]model.DocumentType, 0, len(model.DocumentTypes))
	for _, doc := range model.DocumentTypes {
		if allowed[doc] {
			options = append(options, doc)
		}
	}
	return options
}

// Resolve picks the document type for a dispatch. An empty override yields the
// recommendation; a non-empty one must be among OverrideOptions.
func Resolve(order model.Order, override model.DocumentType) (model.DocumentType, error) {
	if override == "" {
		return Classify(order).Type, nil
	}
	if !override.Valid() {
		return "", domainErrors.ErrInvalidDocumentType
	}
	if !slices.Contains(OverrideOptions(order), override) {
		return "", domainErrors.ErrOverrideNotApplicable
	}
	return override, nil
}

// FormatFor validates the action against the order and returns the format to fetch.
func FormatFor(order model.Order, doc model.DocumentType, action model.DocumentAction) (model.DocumentFormat, error) {
	switch action {
	case model.ActionThermal:
		if !ThermalAvailable(order) || !SupportsThermal(doc) {
			return "", domainErrors.ErrThermalUnavailable
		}
		return model.FormatThermal, nil
	case model.ActionOpen, model.ActionDownload, model.ActionPrint:
		return model.FormatPDF, nil
	default:
		return "", domainErrors.ErrInvalidAction
	}
}

// BuildSurface assembles the action surface an operator UI renders for the order.
func BuildSurface(order model.Order) model.ActionSurface {
	c := Classify(order)
	p := primaryByType[c.Type]

	thermal := model.MenuItem{Action: model.ActionThermal, Label: "Print thermal", Enabled: true}
	switch {
	case !SupportsThermal(c.Type):
		thermal.Enabled = false
		thermal.Reason = "Thermal format is only available for tickets and receipts"
	case !ThermalAvailable(order):
		thermal.Enabled = false
		thermal.Reason = "Thermal printing requires a paid counter sale"
	}

	return model.ActionSurface{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Recommended: c.Type,
		Rule:        string(c.Rule),
		Primary: model.PrimaryAction{
			Action:   p.action,
			Document: c.Type,
			Label:    p.label,
			Icon:     p.icon,
			Endpoint: EndpointFor(c.Type, order.ID, model.FormatPDF),
			Filename: FilenameFor(order.ID, c.Type, model.FormatPDF),
		},
		Menu: []model.MenuItem{
			{Action: model.ActionOpen, Label: "Open in new tab", Enabled: true},
			{Action: model.ActionDownload, Label: "Download", Enabled: true},
			thermal,
		},
		Overrides: OverrideOptions(order),
	}
}
