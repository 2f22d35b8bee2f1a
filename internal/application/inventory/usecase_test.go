package inventory_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenrail/dispensary-api/internal/application/inventory"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

type fakeInventoryRepo struct {
	records []stock.Record
}

func (r *fakeInventoryRepo) Get(productID, locationID string) (*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) GetForUpdate(productID, locationID string) (*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) Upsert(record *entity.InventoryRecord) error { return nil }
func (r *fakeInventoryRepo) ListRecords(ctx context.Context, vendorID, locationID string) ([]stock.Record, error) {
	if locationID == "" {
		return r.records, nil
	}
	var out []stock.Record
	for _, rec := range r.records {
		if rec.LocationID == locationID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByVendorAndSKU(vendorID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func testRecords() []stock.Record {
	return []stock.Record{
		{ProductID: "P1", ProductName: "Blue Dream 3.5g", SKU: "BD-35", Category: "flower",
			Price: decimal.NewFromInt(45), LocationID: "L1", LocationName: "Main St", Quantity: decimal.NewFromInt(5)},
		{ProductID: "P1", ProductName: "Blue Dream 3.5g", SKU: "BD-35", Category: "flower",
			Price: decimal.NewFromInt(45), LocationID: "L2", LocationName: "Downtown", Quantity: decimal.Zero},
		{ProductID: "P1", ProductName: "Blue Dream 3.5g", SKU: "BD-35", Category: "flower",
			Price: decimal.NewFromInt(45), LocationID: "L3", LocationName: "Harbor", Quantity: decimal.NewFromInt(6)},
		{ProductID: "P2", ProductName: "Sour Gummies", SKU: "SG-10", Category: "edible",
			Price: decimal.NewFromInt(20), LocationID: "L1", LocationName: "Main St", Quantity: decimal.NewFromInt(2)},
	}
}

func newUseCase(records []stock.Record) *inventory.UseCase {
	invRepo := &fakeInventoryRepo{records: records}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"P1": {
			ID: "P1", VendorID: "vendor-1", Price: decimal.NewFromInt(45),
			PricingTiers: json.RawMessage(`[{"quantity":1,"price":40},{"quantity":8,"price":35},{"quantity":28,"price":30}]`),
		},
		"P2": {ID: "P2", VendorID: "vendor-1", Price: decimal.NewFromInt(20)},
	}}
	return inventory.NewUseCase(invRepo, productRepo, &fakeMovementRepo{})
}

// TestListAggregated_POSView: the POS surface gets three-tier statuses, the
// zero-quantity location dropped from the breakdown, and the tier price
// range as display price.
func TestListAggregated_POSView(t *testing.T) {
	uc := newUseCase(testRecords())

	out, err := uc.ListAggregated(context.Background(), "vendor-1", "", stock.PolicyPOS)
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)

	p1 := out.Items[0]
	assert.Equal(t, "P1", p1.ProductID)
	assert.True(t, p1.TotalStock.Equal(decimal.NewFromInt(11)))
	assert.Equal(t, "in_stock", p1.StockStatus)
	assert.Equal(t, "$30 - $40", p1.DisplayPrice)
	require.Len(t, p1.Locations, 2, "zero-quantity Downtown row must be omitted")

	p2 := out.Items[1]
	assert.Equal(t, "low_stock", p2.StockStatus)
	assert.Equal(t, "$20", p2.DisplayPrice, "no tiers: base price displayed")
}

// TestListAggregated_StorefrontView: the same rows under the binary policy
// never produce low_stock.
func TestListAggregated_StorefrontView(t *testing.T) {
	uc := newUseCase(testRecords())

	out, err := uc.ListAggregated(context.Background(), "vendor-1", "", stock.PolicyStorefront)
	require.NoError(t, err)
	assert.Equal(t, "in_stock", out.Items[0].StockStatus)
	assert.Equal(t, "in_stock", out.Items[1].StockStatus)
}

// TestListAggregated_LocationFilter: filtering to one location only sums that
// location's rows.
func TestListAggregated_LocationFilter(t *testing.T) {
	uc := newUseCase(testRecords())

	out, err := uc.ListAggregated(context.Background(), "vendor-1", "L1", stock.PolicyPOS)
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.True(t, out.Items[0].TotalStock.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "low_stock", out.Items[0].StockStatus)
}

// Movements checks ownership before exposing the trail.
func TestMovements_OwnershipGate(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	movRepo := &fakeMovementRepo{movements: []*entity.StockMovement{
		{ID: "m1", ProductID: "P1", Type: entity.MovementTypeAdjustment, Quantity: decimal.NewFromInt(5)},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"P1": {ID: "P1", VendorID: "vendor-1"},
	}}
	uc := inventory.NewUseCase(invRepo, productRepo, movRepo)

	out, err := uc.Movements(context.Background(), "vendor-1", "P1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, out.Items[0].Type)

	_, err = uc.Movements(context.Background(), "vendor-2", "P1", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshot_UsesPOSPolicy(t *testing.T) {
	uc := newUseCase(testRecords())

	snap, err := uc.Snapshot(context.Background(), "vendor-1")
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, stock.StatusLowStock, snap[1].Status)
}
