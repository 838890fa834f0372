// Package document derives which commercial document an order produces, where
// the backend serves it and which actions an operator may take on it.
package document

import "github.com/polkiloo/posdocs/internal/domain/model"

// Rule names the classifier branch that produced a document type.
type Rule string

const (
	RuleProforma Rule = "proforma"
	RuleCredit   Rule = "credit"
	RulePaidSale Rule = "paid_sale"
	RuleFallback Rule = "fallback"
)

// Classification is the outcome of Classify.
type Classification struct {
	Type model.DocumentType
	Rule Rule
}

// IsFallback reports whether no explicit rule matched the order.
func (c Classification) IsFallback() bool {
	return c.Rule == RuleFallback
}

// Classify returns the recommended document type for the order. Rules are
// evaluated in priority order and the first match wins.
func Classify(order model.Order) Classification {
	if order.Type == model.OrderTypeProforma {
		return Classification{Type: model.DocumentProforma, Rule: RuleProforma}
	}

	if order.HasCreditPayment() ||
		order.PaymentStatus == model.PaymentStatusPartiallyPaid ||
		order.Type == model.OrderTypeCreditSale {
		return Classification{Type: model.DocumentInvoice, Rule: RuleCredit}
	}

	if order.PaymentStatus == model.PaymentStatusPaid && isPOSSale(order.Type) {
		return Classification{Type: model.DocumentTicket, Rule: RulePaidSale}
	}

	return Classification{Type: model.DocumentTicket, Rule: RuleFallback}
}

// isPOSSale treats an absent order type as a counter sale.
func isPOSSale(t model.OrderType) bool {
	return t == "" || t == model.OrderTypePOSSale
}
