package repository

import "github.com/greenrail/dispensary-api/internal/domain/entity"

// LocationRepository defines the persistence port for Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	ListByVendor(vendorID string, limit, offset int) ([]*entity.Location, error)
	Delete(id string) error
}
