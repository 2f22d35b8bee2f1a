package repository

import (
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
)

// CashSessionRepository defines the persistence port for register sessions (DIP).
// GetOpenByLocationForUpdate locks the open session row so concurrent sales
// and the close flow serialize on it.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	GetByID(id string) (*entity.CashSession, error)
	GetOpenByLocation(locationID string) (*entity.CashSession, error)
	GetOpenByLocationForUpdate(locationID string) (*entity.CashSession, error)
	AddCashSale(sessionID string, amount decimal.Decimal) error
	Close(session *entity.CashSession) error
}
