package inventory

import (
	"context"
	"time"

	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// ExportUseCase produces the compliance manifest for a vendor's full
// inventory snapshot.
type ExportUseCase struct {
	inventory  *UseCase
	vendorRepo repository.VendorRepository
	renderer   ManifestRenderer
}

// NewExportUseCase builds the use case.
func NewExportUseCase(inv *UseCase, vendorRepo repository.VendorRepository, renderer ManifestRenderer) *ExportUseCase {
	return &ExportUseCase{inventory: inv, vendorRepo: vendorRepo, renderer: renderer}
}

// Manifest renders the current snapshot as XML bytes.
func (uc *ExportUseCase) Manifest(ctx context.Context, vendorID string) ([]byte, error) {
	vendor, err := uc.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	snapshot, err := uc.inventory.Snapshot(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Build(vendor, snapshot, time.Now())
}
