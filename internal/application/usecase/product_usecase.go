package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/pricing"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// ProductUseCase CRUD use cases for catalog products. The tier blob is
// validated through the pricing parser on every write so the storefront and
// POS never see a shape the resolver cannot handle.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create creates a new product.
func (uc *ProductUseCase) Create(vendorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByVendorAndSKU(vendorID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := validateTiers(in.PricingTiers); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		VendorID:     vendorID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		PricingTiers: in.PricingTiers,
		Attributes:   in.Attributes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID fetches a product, enforcing vendor ownership.
func (uc *ProductUseCase) GetByID(vendorID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update updates a product's editable fields, enforcing vendor ownership.
func (uc *ProductUseCase) Update(vendorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if len(in.PricingTiers) > 0 {
		if err := validateTiers(in.PricingTiers); err != nil {
			return nil, err
		}
		product.PricingTiers = in.PricingTiers
	}
	if len(in.Attributes) > 0 {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lists the vendor's products with pagination.
func (uc *ProductUseCase) List(vendorID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes a product (explicit admin action), enforcing vendor ownership.
func (uc *ProductUseCase) Delete(vendorID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.VendorID != vendorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// SelectTier resolves the tier at index for a product (POS cart flow). The
// index is bounds-checked here; the resolver itself assumes a valid index.
func (uc *ProductUseCase) SelectTier(vendorID, id string, index int) (*dto.TierSelectionResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	tiers := pricing.ParseTiers(product.PricingTiers)
	if index < 0 || index >= len(tiers) {
		return nil, domain.ErrInvalidInput
	}
	sel := pricing.SelectTier(tiers, index)
	return &dto.TierSelectionResponse{Price: sel.Price, Quantity: sel.Quantity, Label: sel.Label}, nil
}

// validateTiers rejects blobs with negative prices. Shape tolerance is the
// parser's job; negative money is not tolerable.
func validateTiers(raw []byte) error {
	for _, t := range pricing.ParseTiers(raw) {
		if t.Price.LessThan(decimal.Zero) || t.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	tiers := pricing.ParseTiers(p.PricingTiers)
	return &dto.ProductResponse{
		ID:           p.ID,
		VendorID:     p.VendorID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		DisplayPrice: pricing.PriceRange(tiers, p.Price),
		PricingTiers: p.PricingTiers,
		Attributes:   p.Attributes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
