package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType describes the commercial intent of an order.
type OrderType string

const (
	OrderTypePOSSale    OrderType = "POS_SALE"
	OrderTypeCreditSale OrderType = "CREDIT_SALE"
	OrderTypeProforma   OrderType = "PROFORMA"
	OrderTypeOnline     OrderType = "ONLINE"
)

// PaymentStatus describes settlement state of an order as reported by backend.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusPaid          PaymentStatus = "PAID"
	PaymentStatusCredit        PaymentStatus = "CREDIT"
	PaymentStatusCancelled     PaymentStatus = "CANCELLED"
)

// Order is a read-only snapshot of a commercial transaction owned by the backend.
type Order struct {
	ID            string          `json:"id"`
	Number        string          `json:"orderNumber"`
	Type          OrderType       `json:"orderType,omitempty"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Payments      []Payment       `json:"payments"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// HasCreditPayment reports whether any payment record was taken on credit.
func (o Order) HasCreditPayment() bool {
	for _, p := range o.Payments {
		if p.Status == PaymentRecordStatusCredit {
			return true
		}
	}
	return false
}

// HasCompletedPayment reports whether money was actually received for the order.
func (o Order) HasCompletedPayment() bool {
	for _, p := range o.Payments {
		if p.Status == PaymentRecordStatusCompleted {
			return true
		}
	}
	return false
}
