package repository

import "github.com/greenrail/dispensary-api/internal/domain/entity"

// VendorRepository defines the persistence port for Vendor (DIP).
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	GetBySlug(slug string) (*entity.Vendor, error)
	List(limit, offset int) ([]*entity.Vendor, error)
}
