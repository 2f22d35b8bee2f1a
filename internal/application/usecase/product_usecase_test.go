package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/application/usecase"
	"github.com/greenrail/dispensary-api/internal/domain"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByVendorAndSKU(vendorID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.VendorID == vendorID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

const tierBlob = `[{"quantity":1,"price":40,"label":"single"},{"quantity":8,"price":35,"label":"eighth pack"},{"quantity":28,"price":30,"label":"ounce"}]`

func TestCreate_DisplayPriceFromTiers(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU:          "BD-35",
		Name:         "Blue Dream 3.5g",
		Price:        decimal.NewFromInt(45),
		PricingTiers: json.RawMessage(tierBlob),
	})
	require.NoError(t, err)
	assert.Equal(t, "$30 - $40", out.DisplayPrice)
}

func TestCreate_NoTiersShowsBasePrice(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "SG-10", Name: "Sour Gummies", Price: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "$20", out.DisplayPrice)
}

func TestCreate_DuplicateSKUSameVendor(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create("vendor-1", dto.CreateProductRequest{SKU: "BD-35", Name: "Blue Dream"})
	require.NoError(t, err)

	_, err = uc.Create("vendor-1", dto.CreateProductRequest{SKU: "BD-35", Name: "Blue Dream again"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Same SKU under another vendor is fine.
	_, err = uc.Create("vendor-2", dto.CreateProductRequest{SKU: "BD-35", Name: "Blue Dream"})
	assert.NoError(t, err)
}

func TestCreate_RejectsNegativeTierPrice(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "X", Name: "X",
		PricingTiers: json.RawMessage(`[{"quantity":1,"price":-5}]`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_TierBlobReplaced(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "BD-35", Name: "Blue Dream", Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "$45", created.DisplayPrice)

	updated, err := uc.Update("vendor-1", created.ID, dto.UpdateProductRequest{
		PricingTiers: json.RawMessage(tierBlob),
	})
	require.NoError(t, err)
	assert.Equal(t, "$30 - $40", updated.DisplayPrice)
}

func TestUpdate_OtherVendorForbidden(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "BD-35", Name: "Blue Dream", Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = uc.Update("vendor-2", created.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The row is untouched.
	kept, err := uc.GetByID("vendor-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Dream", kept.Name)
}

func TestDelete_OtherVendorForbidden(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "BD-35", Name: "Blue Dream", Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete("vendor-2", created.ID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete("vendor-1", "missing"), domain.ErrNotFound)

	require.NoError(t, uc.Delete("vendor-1", created.ID))
	gone, err := uc.GetByID("vendor-1", created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSelectTier(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("vendor-1", dto.CreateProductRequest{
		SKU: "BD-35", Name: "Blue Dream", Price: decimal.NewFromInt(45),
		PricingTiers: json.RawMessage(tierBlob),
	})
	require.NoError(t, err)

	sel, err := uc.SelectTier("vendor-1", created.ID, 1)
	require.NoError(t, err)
	assert.True(t, sel.Price.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "eighth pack", sel.Label)

	_, err = uc.SelectTier("vendor-1", created.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SelectTier("vendor-1", "missing", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SelectTier("vendor-2", created.ID, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
