// Package storefront serves the public menu: no authentication, vendor
// resolved by slug, stock shown with the binary availability policy.
package storefront

import (
	"context"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/application/inventory"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// UseCase resolves public menus.
type UseCase struct {
	vendorRepo repository.VendorRepository
	inventory  *inventory.UseCase
}

// NewUseCase builds the use case.
func NewUseCase(vendorRepo repository.VendorRepository, inv *inventory.UseCase) *UseCase {
	return &UseCase{vendorRepo: vendorRepo, inventory: inv}
}

// Menu returns the aggregated menu for an active vendor slug. Suspended
// vendors are hidden from the public surface.
func (uc *UseCase) Menu(ctx context.Context, slug string) (*dto.InventoryListResponse, error) {
	vendor, err := uc.vendorRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if vendor == nil || vendor.Status != "active" {
		return nil, domain.ErrNotFound
	}
	return uc.inventory.ListAggregated(ctx, vendor.ID, "", stock.PolicyStorefront)
}
