package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository over PostgreSQL (pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get fetches the stock row for product+location.
func (r *InventoryRepo) Get(productID, locationID string) (*entity.InventoryRecord, error) {
	return r.get(productID, locationID, false)
}

// GetForUpdate fetches the stock row with a row lock (SELECT FOR UPDATE).
// Must run inside a transaction.
func (r *InventoryRepo) GetForUpdate(productID, locationID string) (*entity.InventoryRecord, error) {
	return r.get(productID, locationID, true)
}

func (r *InventoryRepo) get(productID, locationID string, forUpdate bool) (*entity.InventoryRecord, error) {
	query := `
		SELECT product_id, location_id, quantity, unit_cost, updated_at
		FROM inventory WHERE product_id = $1 AND location_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&rec.ProductID, &rec.LocationID, &rec.Quantity, &rec.UnitCost, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// Upsert writes the stock row for product+location.
func (r *InventoryRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (product_id, location_id, quantity, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit_cost = EXCLUDED.unit_cost, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.LocationID, record.Quantity, record.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// ListRecords returns the vendor's inventory rows joined with product and
// location metadata, in the shape the aggregator consumes. locationID
// filters to one location when non-empty.
func (r *InventoryRepo) ListRecords(ctx context.Context, vendorID, locationID string) ([]stock.Record, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.category, p.price,
		       l.id, l.name, COALESCE(i.quantity, 0), i.unit_cost
		FROM products p
		JOIN inventory i ON i.product_id = p.id
		JOIN locations l ON l.id = i.location_id
		WHERE p.vendor_id = $1`
	args := []any{vendorID}
	if locationID != "" {
		query += ` AND i.location_id = $2`
		args = append(args, locationID)
	}
	query += ` ORDER BY p.created_at DESC, l.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()

	var records []stock.Record
	for rows.Next() {
		var rec stock.Record
		if err := rows.Scan(
			&rec.ProductID, &rec.ProductName, &rec.SKU, &rec.Category, &rec.Price,
			&rec.LocationID, &rec.LocationName, &rec.Quantity, &rec.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implements StockMovementRepository over PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends an audit row.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, transaction_id, product_id, location_id, type, quantity, unit_cost, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ProductID, movement.LocationID,
		movement.Type, movement.Quantity, movement.UnitCost, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lists a product's audit trail, newest first.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, location_id, type, quantity, unit_cost, created_by, created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.LocationID,
			&m.Type, &m.Quantity, &m.UnitCost, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
