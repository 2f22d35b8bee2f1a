package repository

import "github.com/greenrail/dispensary-api/internal/domain/entity"

// SaleRepository defines the persistence port for POS sales (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale, items []entity.SaleItem) error
	GetByID(id string) (*entity.Sale, []entity.SaleItem, error)
}
