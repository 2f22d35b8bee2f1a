package inventory

import (
	"context"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/pricing"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// UseCase read-side inventory use cases: the aggregated view consumed by the
// POS and the storefront menu. The status policy is injected by the surface
// (POS uses the three-tier policy, the public menu the binary one).
type UseCase struct {
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewUseCase builds the use case.
func NewUseCase(invRepo repository.InventoryRepository, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{invRepo: invRepo, productRepo: productRepo, movRepo: movRepo}
}

// ListAggregated fetches the vendor's inventory rows and folds them into one
// summary per product under the given policy. locationID filters to a single
// location when non-empty.
func (uc *UseCase) ListAggregated(ctx context.Context, vendorID, locationID string, policy stock.StatusPolicy) (*dto.InventoryListResponse, error) {
	records, err := uc.invRepo.ListRecords(ctx, vendorID, locationID)
	if err != nil {
		return nil, err
	}
	aggregated := stock.Aggregate(records, policy)

	items := make([]dto.ProductStockDTO, 0, len(aggregated))
	for _, ps := range aggregated {
		items = append(items, toProductStockDTO(ps, uc.displayPrice(ps)))
	}
	return &dto.InventoryListResponse{Total: len(items), Items: items}, nil
}

// Snapshot returns the aggregated stock for the compliance export. Always the
// POS policy: the manifest is an operational document, not a menu.
func (uc *UseCase) Snapshot(ctx context.Context, vendorID string) ([]stock.ProductStock, error) {
	records, err := uc.invRepo.ListRecords(ctx, vendorID, "")
	if err != nil {
		return nil, err
	}
	return stock.Aggregate(records, stock.PolicyPOS), nil
}

// Movements lists a product's audit trail, newest first. Ownership is
// checked before touching the trail.
func (uc *UseCase) Movements(ctx context.Context, vendorID, productID string, limit, offset int) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.VendorID != vendorID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementDTO, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementDTO{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			LocationID:    m.LocationID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// displayPrice computes the tier price range for a summarized product. A
// missing product row (deleted mid-read) falls back to the base price.
func (uc *UseCase) displayPrice(ps stock.ProductStock) string {
	product, err := uc.productRepo.GetByID(ps.ProductID)
	if err != nil || product == nil {
		return pricing.PriceRange(nil, ps.Price)
	}
	return pricing.PriceRange(pricing.ParseTiers(product.PricingTiers), product.Price)
}

func toProductStockDTO(ps stock.ProductStock, displayPrice string) dto.ProductStockDTO {
	locations := make([]dto.LocationStockDTO, 0, len(ps.Locations))
	for _, l := range ps.Locations {
		locations = append(locations, dto.LocationStockDTO{
			LocationID:   l.LocationID,
			LocationName: l.LocationName,
			Quantity:     l.Quantity,
		})
	}
	return dto.ProductStockDTO{
		ProductID:    ps.ProductID,
		ProductName:  ps.ProductName,
		SKU:          ps.SKU,
		Category:     ps.Category,
		Price:        ps.Price,
		DisplayPrice: displayPrice,
		TotalStock:   ps.Total,
		StockStatus:  string(ps.Status),
		Locations:    locations,
	}
}
