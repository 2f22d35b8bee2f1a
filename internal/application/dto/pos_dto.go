package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest one line of a POS ticket. TierIndex optionally pins a
// configured tier (the UI constrains it to a valid index); when nil the tier
// is resolved from the quantity, falling back to the base price.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	TierIndex *int            `json:"tier_index,omitempty"`
}

// CreateSaleRequest body for POST /api/sales.
type CreateSaleRequest struct {
	LocationID    string            `json:"location_id"`
	PaymentMethod string            `json:"payment_method"` // cash | debit
	Lines         []SaleLineRequest `json:"lines"`
}

// SaleItemResponse one resolved line of a sale.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TierLabel string          `json:"tier_label,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse a persisted POS ticket.
type SaleResponse struct {
	ID            string             `json:"id"`
	LocationID    string             `json:"location_id"`
	CashSessionID string             `json:"cash_session_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// OpenSessionRequest body for POST /api/cash-sessions.
type OpenSessionRequest struct {
	LocationID   string          `json:"location_id"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

// CloseSessionRequest body for POST /api/cash-sessions/:id/close.
type CloseSessionRequest struct {
	CountedTotal decimal.Decimal `json:"counted_total"`
	Payouts      decimal.Decimal `json:"payouts"`
}

// CashSessionResponse register session output; Expected and Variance are set
// once the session is closed.
type CashSessionResponse struct {
	ID           string          `json:"id"`
	LocationID   string          `json:"location_id"`
	Status       string          `json:"status"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
	CashSales    decimal.Decimal `json:"cash_sales"`
	Payouts      decimal.Decimal `json:"payouts"`
	CountedTotal decimal.Decimal `json:"counted_total"`
	Expected     decimal.Decimal `json:"expected"`
	Variance     decimal.Decimal `json:"variance"`
	OpenedAt     time.Time       `json:"opened_at"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
}
