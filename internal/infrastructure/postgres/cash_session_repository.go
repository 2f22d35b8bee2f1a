package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implements CashSessionRepository over PostgreSQL.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository builds the persistence adapter.
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

func (r *CashSessionRepo) Create(session *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, vendor_id, location_id, status, opening_float, cash_sales, payouts, opened_by, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.VendorID, session.LocationID, session.Status,
		session.OpeningFloat, session.CashSales, session.Payouts,
		session.OpenedBy, session.OpenedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

func (r *CashSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	return r.getOne(`SELECT `+sessionColumns+` FROM cash_sessions WHERE id = $1`, id)
}

func (r *CashSessionRepo) GetOpenByLocation(locationID string) (*entity.CashSession, error) {
	return r.getOne(`SELECT `+sessionColumns+` FROM cash_sessions WHERE location_id = $1 AND status = 'open'`, locationID)
}

// GetOpenByLocationForUpdate locks the open session row for the duration of
// the enclosing transaction.
func (r *CashSessionRepo) GetOpenByLocationForUpdate(locationID string) (*entity.CashSession, error) {
	return r.getOne(`SELECT `+sessionColumns+` FROM cash_sessions WHERE location_id = $1 AND status = 'open' FOR UPDATE`, locationID)
}

// AddCashSale accumulates a cash payment into the running session total.
func (r *CashSessionRepo) AddCashSale(sessionID string, amount decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cash_sessions SET cash_sales = cash_sales + $1 WHERE id = $2`,
		amount, sessionID,
	)
	if err != nil {
		return fmt.Errorf("add cash sale: %w", err)
	}
	return nil
}

// Close writes the counted drawer total and the reconciliation result.
func (r *CashSessionRepo) Close(session *entity.CashSession) error {
	query := `
		UPDATE cash_sessions
		SET status = $1, counted_total = $2, expected = $3, variance = $4, payouts = $5, closed_at = $6
		WHERE id = $7`
	_, err := r.q.Exec(context.Background(), query,
		session.Status, session.CountedTotal, session.Expected, session.Variance,
		session.Payouts, session.ClosedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	return nil
}

const sessionColumns = `id, vendor_id, location_id, status, opening_float, cash_sales, payouts,
	COALESCE(counted_total, 0), COALESCE(expected, 0), COALESCE(variance, 0), opened_by, opened_at, closed_at`

func (r *CashSessionRepo) getOne(query string, arg any) (*entity.CashSession, error) {
	var s entity.CashSession
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.VendorID, &s.LocationID, &s.Status,
		&s.OpeningFloat, &s.CashSales, &s.Payouts,
		&s.CountedTotal, &s.Expected, &s.Variance,
		&s.OpenedBy, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}
