package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// TestPolicyPOS_Thresholds pins the three-tier boundaries: 11 is in_stock,
// exactly 10 is low_stock (not in_stock), 0 is out_of_stock.
func TestPolicyPOS_Thresholds(t *testing.T) {
	cases := []struct {
		total int64
		want  stock.Status
	}{
		{11, stock.StatusInStock},
		{10, stock.StatusLowStock},
		{1, stock.StatusLowStock},
		{0, stock.StatusOutOfStock},
	}
	for _, tc := range cases {
		got := stock.PolicyPOS.StatusFor(decimal.NewFromInt(tc.total))
		assert.Equal(t, tc.want, got, "total=%d", tc.total)
	}
}

// TestPolicyPOS_FractionalBoundary: quantities are decimals, 10.5 is above
// the threshold and resolves to in_stock.
func TestPolicyPOS_FractionalBoundary(t *testing.T) {
	got := stock.PolicyPOS.StatusFor(decimal.RequireFromString("10.5"))
	assert.Equal(t, stock.StatusInStock, got)
}

// TestPolicyStorefront_Binary: the public menu only distinguishes in stock
// from out of stock.
func TestPolicyStorefront_Binary(t *testing.T) {
	assert.Equal(t, stock.StatusInStock, stock.PolicyStorefront.StatusFor(decimal.NewFromInt(1)))
	assert.Equal(t, stock.StatusInStock, stock.PolicyStorefront.StatusFor(decimal.NewFromInt(500)))
	assert.Equal(t, stock.StatusOutOfStock, stock.PolicyStorefront.StatusFor(decimal.Zero))
}
