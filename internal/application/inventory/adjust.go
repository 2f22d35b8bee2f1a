package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// MutationUseCase write-side inventory use cases: adjustments, transfers and
// bulk imports, all executed transactionally with row locks
// (SELECT FOR UPDATE) so concurrent mutations serialize per product+location.
type MutationUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewMutationUseCase builds the use case.
func NewMutationUseCase(txRunner TxRunner, productRepo repository.ProductRepository, locationRepo repository.LocationRepository) *MutationUseCase {
	return &MutationUseCase{txRunner: txRunner, productRepo: productRepo, locationRepo: locationRepo}
}

// Adjust applies a signed stock adjustment at one location. Negative
// adjustments cannot take the row below zero (ErrInsufficientStock).
func (uc *MutationUseCase) Adjust(ctx context.Context, vendorID, userID string, in dto.AdjustStockRequest) error {
	if in.ProductID == "" || in.LocationID == "" || in.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	product, _, err := uc.ownedProductAndLocation(vendorID, in.ProductID, in.LocationID)
	if err != nil {
		return err
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		record, err := invRepo.GetForUpdate(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if record == nil {
			record = &entity.InventoryRecord{ProductID: in.ProductID, LocationID: in.LocationID, Quantity: decimal.Zero}
		}
		newQty := record.Quantity.Add(in.Quantity)
		if newQty.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		record.Quantity = newQty
		record.UpdatedAt = now
		if in.UnitCost != nil {
			record.UnitCost = in.UnitCost
		}
		if err := invRepo.Upsert(record); err != nil {
			return err
		}
		unitCost := product.Price
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ProductID:     in.ProductID,
			LocationID:    in.LocationID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      in.Quantity,
			UnitCost:      unitCost,
			CreatedBy:     userID,
			CreatedAt:     now,
		})
	})
}

// Transfer moves quantity between two of the vendor's locations in a single
// transaction: two row locks, two audit rows sharing one transaction ID.
func (uc *MutationUseCase) Transfer(ctx context.Context, vendorID, userID string, in dto.TransferStockRequest) error {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, _, err := uc.ownedProductAndLocation(vendorID, in.ProductID, in.FromLocationID)
	if err != nil {
		return err
	}
	toLoc, _ := uc.locationRepo.GetByID(in.ToLocationID)
	if toLoc == nil || toLoc.VendorID != vendorID {
		return domain.ErrNotFound
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		origin, err := invRepo.GetForUpdate(in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		if origin == nil || origin.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		dest, err := invRepo.GetForUpdate(in.ProductID, in.ToLocationID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.InventoryRecord{ProductID: in.ProductID, LocationID: in.ToLocationID, Quantity: decimal.Zero}
		}
		origin.Quantity = origin.Quantity.Sub(in.Quantity)
		dest.Quantity = dest.Quantity.Add(in.Quantity)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := invRepo.Upsert(origin); err != nil {
			return err
		}
		if err := invRepo.Upsert(dest); err != nil {
			return err
		}
		outMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ProductID:     in.ProductID,
			LocationID:    in.FromLocationID,
			Type:          entity.MovementTypeTransfer,
			Quantity:      in.Quantity.Neg(),
			UnitCost:      product.Price,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ProductID:     in.ProductID,
			LocationID:    in.ToLocationID,
			Type:          entity.MovementTypeTransfer,
			Quantity:      in.Quantity,
			UnitCost:      product.Price,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		return movRepo.Create(inMov)
	})
}

// Import upserts a batch of loosely typed rows (legacy platform exports).
// Rows missing identifiers or not owned by the vendor are skipped, not
// fatal; quantities already degraded to zero by the tolerant decoder are
// applied as zero.
func (uc *MutationUseCase) Import(ctx context.Context, vendorID, userID string, in dto.ImportRequest) (*dto.ImportResponse, error) {
	now := time.Now()
	txID := uuid.New().String()
	out := &dto.ImportResponse{}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, row := range in.Rows {
			if row.ProductID == "" || row.LocationID == "" {
				out.Skipped++
				continue
			}
			product, err := productRepo.GetByID(row.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.VendorID != vendorID {
				out.Skipped++
				continue
			}
			qty := row.Quantity.Decimal
			if qty.LessThan(decimal.Zero) {
				out.Skipped++
				continue
			}
			record, err := invRepo.GetForUpdate(row.ProductID, row.LocationID)
			if err != nil {
				return err
			}
			if record == nil {
				record = &entity.InventoryRecord{ProductID: row.ProductID, LocationID: row.LocationID}
			}
			delta := qty.Sub(record.Quantity)
			record.Quantity = qty
			record.UpdatedAt = now
			if err := invRepo.Upsert(record); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ProductID:     row.ProductID,
				LocationID:    row.LocationID,
				Type:          entity.MovementTypeImport,
				Quantity:      delta,
				UnitCost:      product.Price,
				CreatedBy:     userID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
			out.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ownedProductAndLocation validates that both resources exist and belong to
// the vendor.
func (uc *MutationUseCase) ownedProductAndLocation(vendorID, productID, locationID string) (*entity.Product, *entity.Location, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, nil, domain.ErrNotFound
	}
	if product.VendorID != vendorID {
		return nil, nil, domain.ErrForbidden
	}
	location, _ := uc.locationRepo.GetByID(locationID)
	if location == nil || location.VendorID != vendorID {
		return nil, nil, domain.ErrNotFound
	}
	return product, location, nil
}
