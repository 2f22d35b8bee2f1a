package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists the sale header and its items. Callers run this inside the
// sale transaction.
func (r *SaleRepo) Create(sale *entity.Sale, items []entity.SaleItem) error {
	query := `
		INSERT INTO sales (id, vendor_id, location_id, cash_session_id, payment_method, subtotal, total, created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.VendorID, sale.LocationID, sale.CashSessionID,
		sale.PaymentMethod, sale.Subtotal, sale.Total, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, tier_label, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.SaleID, item.ProductID, item.Quantity,
			item.UnitPrice, item.TierLabel, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID fetches a sale with its items.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, []entity.SaleItem, error) {
	query := `
		SELECT id, vendor_id, location_id, COALESCE(cash_session_id, ''), payment_method, subtotal, total, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.VendorID, &s.LocationID, &s.CashSessionID,
		&s.PaymentMethod, &s.Subtotal, &s.Total, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, quantity, unit_price, tier_label, line_total
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.TierLabel, &item.LineTotal); err != nil {
			return nil, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return &s, items, rows.Err()
}
