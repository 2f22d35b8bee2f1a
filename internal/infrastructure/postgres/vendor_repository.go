package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implements VendorRepository over PostgreSQL (pool or tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persists a new vendor.
func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, slug, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.Slug, vendor.Status, vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID fetches a vendor by ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	return r.getOne(`SELECT id, name, slug, status, created_at, updated_at FROM vendors WHERE id = $1`, id)
}

// GetBySlug fetches a vendor by storefront slug.
func (r *VendorRepo) GetBySlug(slug string) (*entity.Vendor, error) {
	return r.getOne(`SELECT id, name, slug, status, created_at, updated_at FROM vendors WHERE slug = $1`, slug)
}

func (r *VendorRepo) getOne(query, arg string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.Name, &v.Slug, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// List lists vendors with pagination.
func (r *VendorRepo) List(limit, offset int) ([]*entity.Vendor, error) {
	query := `
		SELECT id, name, slug, status, created_at, updated_at
		FROM vendors ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Slug, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
