package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods for Sale.
const (
	PaymentCash  = "cash"
	PaymentDebit = "debit"
)

// Sale is a POS ticket: one or more items sold at a location.
// CashSessionID is set for cash payments attached to an open register session.
type Sale struct {
	ID            string
	VendorID      string
	LocationID    string
	CashSessionID string // empty for non-cash payments
	PaymentMethod string
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleItem is one line of a Sale. UnitPrice is the resolved tier price (or
// base price when no tier applies); TierLabel records which tier was applied.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TierLabel string
	LineTotal decimal.Decimal
}
