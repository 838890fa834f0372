package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates tender types accepted at the till.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// PaymentRecordStatus describes a single payment record.
type PaymentRecordStatus string

const (
	PaymentRecordStatusPending   PaymentRecordStatus = "PENDING"
	PaymentRecordStatusCompleted PaymentRecordStatus = "COMPLETED"
	PaymentRecordStatusCredit    PaymentRecordStatus = "CREDIT"
	PaymentRecordStatusCancelled PaymentRecordStatus = "CANCELLED"
)

// Payment is an append-only payment record attached to exactly one order.
type Payment struct {
	ID        string              `json:"id"`
	Method    PaymentMethod       `json:"method"`
	Amount    decimal.Decimal     `json:"amount"`
	Status    PaymentRecordStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}
