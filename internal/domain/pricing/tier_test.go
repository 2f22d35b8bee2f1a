package pricing_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenrail/dispensary-api/internal/domain/pricing"
)

func tier(qty, price int64, label string) pricing.Tier {
	return pricing.Tier{
		Quantity: decimal.NewFromInt(qty),
		Price:    decimal.NewFromInt(price),
		Label:    label,
	}
}

// TestPriceRange_ReferenceScenario: tiers at $40/$35/$30 with base $45 must
// display as "$30 - $40" (min to max across tiers, base ignored).
func TestPriceRange_ReferenceScenario(t *testing.T) {
	tiers := []pricing.Tier{
		tier(1, 40, "single"),
		tier(8, 35, "eighth pack"),
		tier(28, 30, "ounce"),
	}
	got := pricing.PriceRange(tiers, decimal.NewFromInt(45))
	assert.Equal(t, "$30 - $40", got)
}

// TestPriceRange_NoTiers: with no tiers the base price is the display price.
func TestPriceRange_NoTiers(t *testing.T) {
	assert.Equal(t, "$45", pricing.PriceRange(nil, decimal.NewFromInt(45)))
}

// TestPriceRange_SingleValueCollapse: when every tier has the same price the
// range collapses to a single value.
func TestPriceRange_SingleValueCollapse(t *testing.T) {
	tiers := []pricing.Tier{tier(1, 35, ""), tier(8, 35, ""), tier(28, 35, "")}
	assert.Equal(t, "$35", pricing.PriceRange(tiers, decimal.NewFromInt(45)))
}

// TestPriceRange_Idempotent: same tier list, same string, every time.
func TestPriceRange_Idempotent(t *testing.T) {
	tiers := []pricing.Tier{tier(1, 40, ""), tier(8, 35, "")}
	base := decimal.NewFromInt(45)
	first := pricing.PriceRange(tiers, base)
	second := pricing.PriceRange(tiers, base)
	assert.Equal(t, first, second)
}

// TestPriceRange_FloorsFractionalCents: $29.99 displays as "$29".
func TestPriceRange_FloorsFractionalCents(t *testing.T) {
	tiers := []pricing.Tier{
		{Quantity: decimal.NewFromInt(1), Price: decimal.RequireFromString("29.99")},
	}
	assert.Equal(t, "$29", pricing.PriceRange(tiers, decimal.Zero))
}

// TestPriceRange_ThousandsGrouping: large prices keep the grouping separator.
func TestPriceRange_ThousandsGrouping(t *testing.T) {
	assert.Equal(t, "$1,250", pricing.PriceRange(nil, decimal.NewFromInt(1250)))
}

func TestSelectTier_ReturnsChosenEntry(t *testing.T) {
	tiers := []pricing.Tier{tier(1, 40, "single"), tier(8, 35, "eighth pack")}

	sel := pricing.SelectTier(tiers, 1)
	assert.True(t, sel.Price.Equal(decimal.NewFromInt(35)))
	assert.True(t, sel.Quantity.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "eighth pack", sel.Label)
}

// TestTierFor_PicksHighestMetThreshold: buying 10 units with thresholds at
// 1/8/28 resolves the 8-unit tier.
func TestTierFor_PicksHighestMetThreshold(t *testing.T) {
	tiers := []pricing.Tier{tier(1, 40, ""), tier(8, 35, ""), tier(28, 30, "")}

	got, ok := pricing.TierFor(tiers, decimal.NewFromInt(10))
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(35)))
}

func TestTierFor_NoThresholdMet(t *testing.T) {
	tiers := []pricing.Tier{tier(8, 35, ""), tier(28, 30, "")}

	_, ok := pricing.TierFor(tiers, decimal.NewFromInt(2))
	assert.False(t, ok, "base price applies when no tier threshold is met")
}

// ── ParseTiers: boundary parsing of stored blobs ─────────────────────────────

func TestParseTiers_StringAndNumberValues(t *testing.T) {
	raw := json.RawMessage(`[
		{"quantity":1,"price":40,"label":"single"},
		{"quantity":"8","price":"35.00","name":"eighth pack"}
	]`)

	tiers := pricing.ParseTiers(raw)
	require.Len(t, tiers, 2)
	assert.True(t, tiers[1].Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, tiers[1].Price.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "eighth pack", tiers[1].Label, "falls back to \"name\" when \"label\" is absent")
}

func TestParseTiers_MalformedEntriesDegradeToZero(t *testing.T) {
	raw := json.RawMessage(`[{"quantity":"abc","price":null,"label":"broken"}]`)

	tiers := pricing.ParseTiers(raw)
	require.Len(t, tiers, 1)
	assert.True(t, tiers[0].Quantity.IsZero())
	assert.True(t, tiers[0].Price.IsZero())
}

func TestParseTiers_NotAnArray(t *testing.T) {
	assert.Nil(t, pricing.ParseTiers(json.RawMessage(`{"quantity":1}`)))
	assert.Nil(t, pricing.ParseTiers(nil))
}
