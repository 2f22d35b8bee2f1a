package pos_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/application/pos"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// ── Fakes for the sale flow ──────────────────────────────────────────────────

type fakeInvRepo struct {
	records map[string]*entity.InventoryRecord // productID|locationID
}

func invKey(productID, locationID string) string { return productID + "|" + locationID }

func (r *fakeInvRepo) Get(productID, locationID string) (*entity.InventoryRecord, error) {
	rec, ok := r.records[invKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeInvRepo) GetForUpdate(productID, locationID string) (*entity.InventoryRecord, error) {
	return r.Get(productID, locationID)
}

func (r *fakeInvRepo) Upsert(record *entity.InventoryRecord) error {
	cp := *record
	r.records[invKey(record.ProductID, record.LocationID)] = &cp
	return nil
}

func (r *fakeInvRepo) ListRecords(ctx context.Context, vendorID, locationID string) ([]stock.Record, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items map[string][]entity.SaleItem
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*entity.Sale{}, items: map[string][]entity.SaleItem{}}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale, items []entity.SaleItem) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	r.items[sale.ID] = items
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, []entity.SaleItem, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *s
	return &cp, r.items[id], nil
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

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func (r *fakeVendorRepo) Create(v *entity.Vendor) error { return nil }
func (r *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	return r.vendors[id], nil
}
func (r *fakeVendorRepo) GetBySlug(slug string) (*entity.Vendor, error) { return nil, nil }
func (r *fakeVendorRepo) List(limit, offset int) ([]*entity.Vendor, error) {
	return nil, nil
}

// fakeTxRunner runs the callback against the shared in-memory repos, no
// transaction semantics.
type fakeTxRunner struct {
	inv      *fakeInvRepo
	mov      *fakeMovementRepo
	sales    *fakeSaleRepo
	sessions *fakeSessionRepo
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	sessionRepo repository.CashSessionRepository,
) error) error {
	return fn(r.inv, r.mov, r.sales, r.sessions)
}

type stubReceipts struct{}

func (stubReceipts) GenerateReceipt(_ context.Context, _ *entity.Vendor, _ *entity.Location, _ *entity.Sale, _ []pos.ReceiptLine) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type saleFixture struct {
	uc       *pos.SaleUseCase
	inv      *fakeInvRepo
	mov      *fakeMovementRepo
	sales    *fakeSaleRepo
	sessions *fakeSessionRepo
}

func newSaleFixture() *saleFixture {
	inv := &fakeInvRepo{records: map[string]*entity.InventoryRecord{
		invKey("P1", "loc-1"): {ProductID: "P1", LocationID: "loc-1", Quantity: decimal.NewFromInt(20)},
		invKey("P2", "loc-1"): {ProductID: "P2", LocationID: "loc-1", Quantity: decimal.NewFromInt(3)},
	}}
	mov := &fakeMovementRepo{}
	sales := newFakeSaleRepo()
	sessions := newFakeSessionRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"P1": {
			ID: "P1", VendorID: "vendor-1", Name: "Blue Dream 3.5g", Price: decimal.NewFromInt(45),
			PricingTiers: json.RawMessage(`[{"quantity":1,"price":40,"label":"single"},{"quantity":8,"price":35,"label":"eighth pack"}]`),
		},
		"P2": {ID: "P2", VendorID: "vendor-1", Name: "Sour Gummies", Price: decimal.NewFromInt(20)},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"loc-1": {ID: "loc-1", VendorID: "vendor-1", Name: "Main St", Address: "100 Main St"},
	}}
	vendors := &fakeVendorRepo{vendors: map[string]*entity.Vendor{
		"vendor-1": {ID: "vendor-1", Name: "Green Rail Collective", Slug: "green-rail", Status: "active"},
	}}
	runner := &fakeTxRunner{inv: inv, mov: mov, sales: sales, sessions: sessions}
	uc := pos.NewSaleUseCase(runner, products, locations, vendors, sales, stubReceipts{})
	return &saleFixture{uc: uc, inv: inv, mov: mov, sales: sales, sessions: sessions}
}

func (f *saleFixture) openSession(t *testing.T) *entity.CashSession {
	t.Helper()
	s := &entity.CashSession{
		ID: "sess-1", VendorID: "vendor-1", LocationID: "loc-1",
		Status: entity.SessionOpen, OpeningFloat: decimal.NewFromInt(200),
	}
	require.NoError(t, f.sessions.Create(s))
	return s
}

// ── Tests ────────────────────────────────────────────────────────────────────

// A two-unit line resolves the quantity tier, stock is decremented and audit
// rows are written under the sale's transaction ID.
func TestCreateSale_TierResolutionAndStockDecrement(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines: []dto.SaleLineRequest{
			{ProductID: "P1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(40)), "qty 2 meets the 1-unit tier")
	assert.Equal(t, "single", out.Items[0].TierLabel)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(80)))

	rec, _ := f.inv.Get("P1", "loc-1")
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(18)))

	require.Len(t, f.mov.movements, 1)
	assert.Equal(t, entity.MovementTypeSale, f.mov.movements[0].Type)
	assert.Equal(t, out.ID, f.mov.movements[0].TransactionID)
	assert.True(t, f.mov.movements[0].Quantity.Equal(decimal.NewFromInt(-2)))
}

// A pinned tier index overrides quantity-based resolution.
func TestCreateSale_PinnedTierIndex(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	idx := 1
	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines: []dto.SaleLineRequest{
			{ProductID: "P1", Quantity: decimal.NewFromInt(2), TierIndex: &idx},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "eighth pack", out.Items[0].TierLabel)
}

// Without tiers the base price applies.
func TestCreateSale_BasePriceFallback(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines: []dto.SaleLineRequest{
			{ProductID: "P2", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Empty(t, out.Items[0].TierLabel)
}

// Cash sales require an open register session and accumulate into it.
func TestCreateSale_CashRequiresOpenSession(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: "P2", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)

	session := f.openSession(t)
	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: "P2", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID, out.CashSessionID)

	stored, _ := f.sessions.GetByID(session.ID)
	assert.True(t, stored.CashSales.Equal(decimal.NewFromInt(20)))
}

// Debit sales skip the session entirely.
func TestCreateSale_DebitNeedsNoSession(t *testing.T) {
	f := newSaleFixture()

	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentDebit,
		Lines:         []dto.SaleLineRequest{{ProductID: "P2", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Empty(t, out.CashSessionID)
}

// Oversell is rejected before anything is persisted.
func TestCreateSale_InsufficientStock(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	_, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: "P2", Quantity: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.sales.sales)
}

// Pinned index outside the configured tiers is invalid input.
func TestCreateSale_PinnedIndexOutOfRange(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	idx := 7
	_, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines: []dto.SaleLineRequest{
			{ProductID: "P1", Quantity: decimal.NewFromInt(1), TierIndex: &idx},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Receipt renders bytes for an owned sale and refuses other vendors' sales.
func TestReceipt_OwnershipAndBytes(t *testing.T) {
	f := newSaleFixture()
	f.openSession(t)

	out, err := f.uc.CreateSale(context.Background(), "vendor-1", "user-1", dto.CreateSaleRequest{
		LocationID:    "loc-1",
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: "P2", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	pdf, err := f.uc.Receipt(context.Background(), "vendor-1", out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = f.uc.Receipt(context.Background(), "vendor-2", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
