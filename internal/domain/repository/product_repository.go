package repository

import "github.com/greenrail/dispensary-api/internal/domain/entity"

// ProductRepository defines the persistence port for Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByVendorAndSKU(vendorID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByVendor(vendorID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
