package repository

import (
	"context"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// InventoryRepository defines the port for per-location stock rows (DIP).
// GetForUpdate locks the row (SELECT FOR UPDATE) and is used inside the
// transactional mutation flow.
type InventoryRepository interface {
	Get(productID, locationID string) (*entity.InventoryRecord, error)
	GetForUpdate(productID, locationID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error

	// ListRecords returns the vendor's inventory rows joined with product and
	// location metadata, ready for aggregation. locationID filters to one
	// location when non-empty.
	ListRecords(ctx context.Context, vendorID, locationID string) ([]stock.Record, error)
}

// StockMovementRepository defines the port for the inventory audit trail (DIP).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
