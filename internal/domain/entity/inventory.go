package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord is the current stock of a product at a location.
// Quantity never goes below zero; decrements are applied as new quantity,
// historical detail lives in StockMovement rows.
type InventoryRecord struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
	UpdatedAt  time.Time
}

// Movement types for StockMovement.
const (
	MovementTypeAdjustment = "ADJUSTMENT"
	MovementTypeTransfer   = "TRANSFER"
	MovementTypeSale       = "SALE"
	MovementTypeImport     = "IMPORT"
)

// StockMovement is the audit record for every inventory mutation.
// TransactionID groups the rows written by one operation (e.g. the two legs
// of a transfer, or all lines of a sale).
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	LocationID    string
	Type          string
	Quantity      decimal.Decimal // signed: negative for decrements
	UnitCost      decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}
