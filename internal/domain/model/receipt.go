package model

import "github.com/shopspring/decimal"

// StoreInfo identifies the store printed on receipt headers.
type StoreInfo struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

// ReceiptItem is a single line of the receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentBreakdown aggregates paid amount per tender.
type PaymentBreakdown struct {
	Method PaymentMethod   `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// ReceiptData is a denormalized backend projection of an order used for print preview.
// It is fetched for every print action and never cached.
type ReceiptData struct {
	Store       StoreInfo          `json:"store"`
	Cashier     string             `json:"cashier"`
	OrderNumber string             `json:"orderNumber"`
	Date        string             `json:"date"`
	Items       []ReceiptItem      `json:"items"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	Discount    decimal.Decimal    `json:"discount"`
	Total       decimal.Decimal    `json:"total"`
	Paid        decimal.Decimal    `json:"paid"`
	Remaining   decimal.Decimal    `json:"remaining"`
	Payments    []PaymentBreakdown `json:"payments"`
}
