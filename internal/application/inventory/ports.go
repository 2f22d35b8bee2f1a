package inventory

import (
	"context"
	"time"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// TxRunner executes a function inside a DB transaction, handing it
// repositories bound to that tx. Guarantees atomicity for stock mutations.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ManifestRenderer serializes an inventory snapshot for compliance reporting.
type ManifestRenderer interface {
	Build(vendor *entity.Vendor, snapshot []stock.ProductStock, generatedAt time.Time) ([]byte, error)
}
