package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	domainpos "github.com/greenrail/dispensary-api/internal/domain/pos"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// CashSessionUseCase register shift management: open with a float, close
// with a counted drawer and the reconciliation figures.
type CashSessionUseCase struct {
	sessionRepo  repository.CashSessionRepository
	locationRepo repository.LocationRepository
}

// NewCashSessionUseCase builds the use case.
func NewCashSessionUseCase(sessionRepo repository.CashSessionRepository, locationRepo repository.LocationRepository) *CashSessionUseCase {
	return &CashSessionUseCase{sessionRepo: sessionRepo, locationRepo: locationRepo}
}

// Open starts a session at a location. Only one open session per location.
func (uc *CashSessionUseCase) Open(vendorID, userID string, in dto.OpenSessionRequest) (*dto.CashSessionResponse, error) {
	if in.LocationID == "" || in.OpeningFloat.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	location, _ := uc.locationRepo.GetByID(in.LocationID)
	if location == nil || location.VendorID != vendorID {
		return nil, domain.ErrNotFound
	}
	open, err := uc.sessionRepo.GetOpenByLocation(in.LocationID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrConflict
	}
	session := &entity.CashSession{
		ID:           uuid.New().String(),
		VendorID:     vendorID,
		LocationID:   in.LocationID,
		Status:       entity.SessionOpen,
		OpeningFloat: in.OpeningFloat,
		CashSales:    decimal.Zero,
		Payouts:      decimal.Zero,
		OpenedBy:     userID,
		OpenedAt:     time.Now(),
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Close reconciles and closes a session:
// expected = opening + cash sales - payouts, variance = counted - expected.
func (uc *CashSessionUseCase) Close(vendorID, id string, in dto.CloseSessionRequest) (*dto.CashSessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	if session.Status != entity.SessionOpen {
		return nil, domain.ErrSessionClosed
	}
	if in.Payouts.LessThan(decimal.Zero) || in.CountedTotal.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	session.Payouts = in.Payouts
	session.CountedTotal = in.CountedTotal
	session.Expected, session.Variance = domainpos.Reconcile(
		session.OpeningFloat, session.CashSales, session.Payouts, session.CountedTotal,
	)
	now := time.Now()
	session.Status = entity.SessionClosed
	session.ClosedAt = &now
	if err := uc.sessionRepo.Close(session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Get fetches a session by ID, enforcing vendor ownership.
func (uc *CashSessionUseCase) Get(vendorID, id string) (*dto.CashSessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	return toSessionResponse(session), nil
}

func toSessionResponse(s *entity.CashSession) *dto.CashSessionResponse {
	return &dto.CashSessionResponse{
		ID:           s.ID,
		LocationID:   s.LocationID,
		Status:       s.Status,
		OpeningFloat: s.OpeningFloat,
		CashSales:    s.CashSales,
		Payouts:      s.Payouts,
		CountedTotal: s.CountedTotal,
		Expected:     s.Expected,
		Variance:     s.Variance,
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
	}
}
