package repository

import "github.com/greenrail/dispensary-api/internal/domain/entity"

// UserRepository defines the persistence port for User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndVendor(email, vendorID string) (*entity.User, error)
}
