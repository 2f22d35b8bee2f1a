package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// LocationStockDTO one entry of the per-location breakdown.
type LocationStockDTO struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ProductStockDTO aggregated stock for one product.
type ProductStockDTO struct {
	ProductID    string             `json:"product_id"`
	ProductName  string             `json:"product_name"`
	SKU          string             `json:"sku"`
	Category     string             `json:"category"`
	Price        decimal.Decimal    `json:"price"`
	DisplayPrice string             `json:"display_price"`
	TotalStock   decimal.Decimal    `json:"total_quantity"`
	StockStatus  string             `json:"stock_status"`
	Locations    []LocationStockDTO `json:"locations"`
}

// InventoryListResponse aggregated inventory for a vendor.
type InventoryListResponse struct {
	Total int               `json:"total"`
	Items []ProductStockDTO `json:"items"`
}

// StockMovementDTO one audit row of the inventory trail.
type StockMovementDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse paginated audit trail for one product.
type MovementListResponse struct {
	Items []StockMovementDTO `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AdjustStockRequest body for POST /api/inventory/adjustments.
// Quantity is signed: positive receives stock, negative removes it.
type AdjustStockRequest struct {
	ProductID  string           `json:"product_id"`
	LocationID string           `json:"location_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason     string           `json:"reason"`
}

// TransferStockRequest body for POST /api/inventory/transfers.
type TransferStockRequest struct {
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// ImportRowDTO one row of a bulk inventory import. Quantity is tolerant of
// the loose shapes legacy exports produce (number, string, null).
type ImportRowDTO struct {
	ProductID  string         `json:"product_id"`
	LocationID string         `json:"location_id"`
	Quantity   stock.Quantity `json:"quantity"`
}

// ImportRequest body for POST /api/inventory/import.
type ImportRequest struct {
	Rows []ImportRowDTO `json:"rows"`
}

// ImportResponse summary of an import run.
type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
