package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/pricing"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// SaleUseCase creates POS tickets: resolves the tier price per line,
// decrements stock under row locks and attaches cash payments to the open
// register session, all in one transaction.
type SaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	vendorRepo   repository.VendorRepository
	saleRepo     repository.SaleRepository
	receipts     ReceiptGenerator
}

// NewSaleUseCase builds the use case.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	vendorRepo repository.VendorRepository,
	saleRepo repository.SaleRepository,
	receipts ReceiptGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		vendorRepo:   vendorRepo,
		saleRepo:     saleRepo,
		receipts:     receipts,
	}
}

// resolvedLine is a sale line after tier resolution, before persistence.
type resolvedLine struct {
	product   *entity.Product
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
	tierLabel string
}

// CreateSale validates and prices the ticket, then commits it atomically.
// Pricing per line: a pinned tier index wins (bounds-guarded here); otherwise
// the highest tier threshold met by the quantity; otherwise the base price.
func (uc *SaleUseCase) CreateSale(ctx context.Context, vendorID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.LocationID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentDebit {
		return nil, domain.ErrInvalidInput
	}
	location, _ := uc.locationRepo.GetByID(in.LocationID)
	if location == nil || location.VendorID != vendorID {
		return nil, domain.ErrNotFound
	}

	lines := make([]resolvedLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.VendorID != vendorID {
			return nil, domain.ErrForbidden
		}
		price, label, err := resolveLinePrice(product, l)
		if err != nil {
			return nil, err
		}
		lines = append(lines, resolvedLine{product: product, quantity: l.Quantity, unitPrice: price, tierLabel: label})
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		VendorID:      vendorID,
		LocationID:    in.LocationID,
		PaymentMethod: in.PaymentMethod,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	items := make([]entity.SaleItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, rl := range lines {
		lineTotal := rl.unitPrice.Mul(rl.quantity)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: rl.product.ID,
			Quantity:  rl.quantity,
			UnitPrice: rl.unitPrice,
			TierLabel: rl.tierLabel,
			LineTotal: lineTotal,
		})
	}
	sale.Subtotal = subtotal
	sale.Total = subtotal

	err := uc.txRunner.RunSale(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.CashSessionRepository,
	) error {
		if in.PaymentMethod == entity.PaymentCash {
			session, err := sessionRepo.GetOpenByLocationForUpdate(in.LocationID)
			if err != nil {
				return err
			}
			if session == nil {
				return domain.ErrNoOpenSession
			}
			sale.CashSessionID = session.ID
			if err := sessionRepo.AddCashSale(session.ID, sale.Total); err != nil {
				return err
			}
		}
		for i, rl := range lines {
			record, err := invRepo.GetForUpdate(rl.product.ID, in.LocationID)
			if err != nil {
				return err
			}
			if record == nil || record.Quantity.LessThan(rl.quantity) {
				return domain.ErrInsufficientStock
			}
			record.Quantity = record.Quantity.Sub(rl.quantity)
			record.UpdatedAt = now
			if err := invRepo.Upsert(record); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: sale.ID,
				ProductID:     rl.product.ID,
				LocationID:    in.LocationID,
				Type:          entity.MovementTypeSale,
				Quantity:      rl.quantity.Neg(),
				UnitCost:      items[i].UnitPrice,
				CreatedBy:     userID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		return saleRepo.Create(sale, items)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// Receipt renders the PDF receipt for a persisted sale.
func (uc *SaleUseCase) Receipt(ctx context.Context, vendorID, saleID string) ([]byte, error) {
	sale, items, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	vendor, err := uc.vendorRepo.GetByID(sale.VendorID)
	if err != nil || vendor == nil {
		return nil, domain.ErrNotFound
	}
	location, _ := uc.locationRepo.GetByID(sale.LocationID)
	if location == nil {
		return nil, domain.ErrNotFound
	}
	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := item.ProductID
		if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{ProductName: name, Item: item})
	}
	return uc.receipts.GenerateReceipt(ctx, vendor, location, sale, lines)
}

// resolveLinePrice applies the tier policy for one line.
func resolveLinePrice(product *entity.Product, l dto.SaleLineRequest) (decimal.Decimal, string, error) {
	tiers := pricing.ParseTiers(product.PricingTiers)
	if l.TierIndex != nil {
		if *l.TierIndex < 0 || *l.TierIndex >= len(tiers) {
			return decimal.Zero, "", domain.ErrInvalidInput
		}
		sel := pricing.SelectTier(tiers, *l.TierIndex)
		return sel.Price, sel.Label, nil
	}
	if tier, ok := pricing.TierFor(tiers, l.Quantity); ok {
		return tier.Price, tier.Label, nil
	}
	return product.Price, "", nil
}

func toSaleResponse(sale *entity.Sale, items []entity.SaleItem) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            sale.ID,
		LocationID:    sale.LocationID,
		CashSessionID: sale.CashSessionID,
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      sale.Subtotal,
		Total:         sale.Total,
		CreatedAt:     sale.CreatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TierLabel: item.TierLabel,
			LineTotal: item.LineTotal,
		})
	}
	return out
}
