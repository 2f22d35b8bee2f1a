package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/greenrail/dispensary-api/internal/domain/pos"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestReconcile_Balanced: drawer counts exactly what the register expects.
func TestReconcile_Balanced(t *testing.T) {
	expected, variance := pos.Reconcile(d("200"), d("1450.50"), d("50"), d("1600.50"))

	assert.True(t, expected.Equal(d("1600.50")))
	assert.True(t, variance.IsZero())
}

// TestReconcile_Shortage: counting less than expected yields a negative
// variance.
func TestReconcile_Shortage(t *testing.T) {
	expected, variance := pos.Reconcile(d("200"), d("1000"), d("0"), d("1180"))

	assert.True(t, expected.Equal(d("1200")))
	assert.True(t, variance.Equal(d("-20")))
}

func TestReconcile_Overage(t *testing.T) {
	_, variance := pos.Reconcile(d("100"), d("500"), d("25"), d("580"))
	assert.True(t, variance.Equal(d("5")))
}
