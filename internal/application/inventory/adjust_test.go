package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/application/inventory"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// ── Fakes for the write side ─────────────────────────────────────────────────

type fakeStockRepo struct {
	records map[string]*entity.InventoryRecord // productID|locationID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: map[string]*entity.InventoryRecord{}}
}

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

func (r *fakeStockRepo) seed(productID, locationID string, qty int64) {
	r.records[stockKey(productID, locationID)] = &entity.InventoryRecord{
		ProductID: productID, LocationID: locationID, Quantity: decimal.NewFromInt(qty),
	}
}

func (r *fakeStockRepo) qty(productID, locationID string) decimal.Decimal {
	rec, ok := r.records[stockKey(productID, locationID)]
	if !ok {
		return decimal.Zero
	}
	return rec.Quantity
}

func (r *fakeStockRepo) Get(productID, locationID string) (*entity.InventoryRecord, error) {
	rec, ok := r.records[stockKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.InventoryRecord, error) {
	return r.Get(productID, locationID)
}

func (r *fakeStockRepo) Upsert(record *entity.InventoryRecord) error {
	cp := *record
	r.records[stockKey(record.ProductID, record.LocationID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListRecords(ctx context.Context, vendorID, locationID string) ([]stock.Record, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(l *entity.Location) error { return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *fakeLocationRepo) Update(l *entity.Location) error { return nil }
func (r *fakeLocationRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}
func (r *fakeLocationRepo) Delete(id string) error { return nil }

// fakeTxRunner hands the callback the same fakes the test asserts on.
type fakeTxRunner struct {
	invRepo     repository.InventoryRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(t.invRepo, t.movRepo, t.productRepo)
}

type mutationFixture struct {
	uc       *inventory.MutationUseCase
	invRepo  *fakeStockRepo
	movRepo  *fakeMovementRepo
	products *fakeProductRepo
}

func newMutationFixture() *mutationFixture {
	invRepo := newFakeStockRepo()
	movRepo := &fakeMovementRepo{}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"P1": {ID: "P1", VendorID: "vendor-1", Price: decimal.NewFromInt(45)},
		"P9": {ID: "P9", VendorID: "vendor-2", Price: decimal.NewFromInt(10)},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"L1": {ID: "L1", VendorID: "vendor-1"},
		"L2": {ID: "L2", VendorID: "vendor-1"},
		"L9": {ID: "L9", VendorID: "vendor-2"},
	}}
	runner := &fakeTxRunner{invRepo: invRepo, movRepo: movRepo, productRepo: products}
	return &mutationFixture{
		uc:       inventory.NewMutationUseCase(runner, products, locations),
		invRepo:  invRepo,
		movRepo:  movRepo,
		products: products,
	}
}

// Positive adjustment upserts the row and writes one audit row.
func TestAdjust_ReceivesStock(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 5)

	err := f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P1", LocationID: "L1", Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, f.invRepo.qty("P1", "L1").Equal(decimal.NewFromInt(15)))

	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromInt(45)), "unit cost defaults to the product price")
	assert.Equal(t, "user-1", mov.CreatedBy)
}

// A negative adjustment cannot take the row below zero and leaves no trace.
func TestAdjust_BelowZeroRejected(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 3)

	err := f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P1", LocationID: "L1", Quantity: decimal.NewFromInt(-4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.invRepo.qty("P1", "L1").Equal(decimal.NewFromInt(3)), "row untouched")
	assert.Empty(t, f.movRepo.movements, "no audit row on rejection")

	// Draining to exactly zero is allowed.
	err = f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P1", LocationID: "L1", Quantity: decimal.NewFromInt(-3),
	})
	require.NoError(t, err)
	assert.True(t, f.invRepo.qty("P1", "L1").IsZero())
}

func TestAdjust_OwnershipAndValidation(t *testing.T) {
	f := newMutationFixture()

	// Another vendor's product.
	err := f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P9", LocationID: "L1", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Another vendor's location.
	err = f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P1", LocationID: "L9", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Zero quantity is meaningless.
	err = f.uc.Adjust(context.Background(), "vendor-1", "user-1", dto.AdjustStockRequest{
		ProductID: "P1", LocationID: "L1", Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Transfer moves quantity between locations and writes two signed audit rows
// sharing one transaction ID.
func TestTransfer_MovesStockWithPairedAudit(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 10)

	err := f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L1", ToLocationID: "L2", Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.True(t, f.invRepo.qty("P1", "L1").Equal(decimal.NewFromInt(6)))
	assert.True(t, f.invRepo.qty("P1", "L2").Equal(decimal.NewFromInt(4)))

	require.Len(t, f.movRepo.movements, 2)
	out, in := f.movRepo.movements[0], f.movRepo.movements[1]
	assert.Equal(t, entity.MovementTypeTransfer, out.Type)
	assert.Equal(t, "L1", out.LocationID)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(-4)))
	assert.Equal(t, "L2", in.LocationID)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, out.TransactionID, in.TransactionID)
}

func TestTransfer_InsufficientOrigin(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 2)

	err := f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L1", ToLocationID: "L2", Quantity: decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.invRepo.qty("P1", "L1").Equal(decimal.NewFromInt(2)))
	assert.True(t, f.invRepo.qty("P1", "L2").IsZero())
	assert.Empty(t, f.movRepo.movements)

	// No row at the origin at all behaves the same.
	err = f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L2", ToLocationID: "L1", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransfer_Validation(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 10)

	// Same origin and destination.
	err := f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L1", ToLocationID: "L1", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Non-positive quantity.
	err = f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L1", ToLocationID: "L2", Quantity: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Destination owned by another vendor.
	err = f.uc.Transfer(context.Background(), "vendor-1", "user-1", dto.TransferStockRequest{
		ProductID: "P1", FromLocationID: "L1", ToLocationID: "L9", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Import sets absolute quantities, skips bad rows instead of failing, and
// audits the delta per applied row.
func TestImport_SkipsBadRows(t *testing.T) {
	f := newMutationFixture()
	f.invRepo.seed("P1", "L1", 5)

	qty := func(v int64) stock.Quantity { return stock.Quantity{Decimal: decimal.NewFromInt(v)} }
	out, err := f.uc.Import(context.Background(), "vendor-1", "user-1", dto.ImportRequest{
		Rows: []dto.ImportRowDTO{
			{ProductID: "P1", LocationID: "L1", Quantity: qty(12)}, // applied, delta +7
			{ProductID: "P9", LocationID: "L1", Quantity: qty(3)},  // other vendor's product
			{ProductID: "", LocationID: "L1", Quantity: qty(3)},    // missing identifier
			{ProductID: "P1", LocationID: "L2", Quantity: stock.Quantity{Decimal: decimal.NewFromInt(-1)}}, // negative
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 3, out.Skipped)

	assert.True(t, f.invRepo.qty("P1", "L1").Equal(decimal.NewFromInt(12)))
	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeImport, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(7)), "audit row carries the delta, not the absolute")
}
