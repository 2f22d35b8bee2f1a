// Package pricing implements volume-discount tier resolution: parsing the
// loosely typed tier blobs stored on products into typed tiers, computing the
// display price range, and resolving the applicable tier for a chosen
// quantity or index.
package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

// Tier pairs a quantity threshold with a unit price. Tiers are independent
// entries with no ordering enforced by storage; range computation sorts by
// price internally.
type Tier struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Label    string          `json:"label,omitempty"`
}

// Selection is a resolved tier surfaced to the caller (e.g. a cart line).
type Selection struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Label    string          `json:"label"`
}

// rawTier mirrors the stored JSON shape, where quantity and price may arrive
// as numbers or strings and the label may be under "label" or "name".
type rawTier struct {
	Quantity any    `json:"quantity"`
	Price    any    `json:"price"`
	Label    string `json:"label"`
	Name     string `json:"name"`
}

// ParseTiers converts a stored tier blob into typed tiers. Malformed numeric
// values degrade to zero; a blob that is not a JSON array yields no tiers.
// Aggregation and display logic never see the loose shape.
func ParseTiers(raw json.RawMessage) []Tier {
	if len(raw) == 0 {
		return nil
	}
	var rts []rawTier
	if err := json.Unmarshal(raw, &rts); err != nil {
		return nil
	}
	tiers := make([]Tier, 0, len(rts))
	for _, rt := range rts {
		label := rt.Label
		if label == "" {
			label = rt.Name
		}
		tiers = append(tiers, Tier{
			Quantity: stock.ParseQuantity(rt.Quantity),
			Price:    stock.ParseQuantity(rt.Price),
			Label:    label,
		})
	}
	return tiers
}

// PriceRange computes the storefront display price for a product. With no
// tiers it is the base price; with tiers it is the min price, or a
// "min - max" range when they differ. Fractional cents are floored for
// display only; this is not a financial rounding policy.
func PriceRange(tiers []Tier, basePrice decimal.Decimal) string {
	if len(tiers) == 0 {
		return FormatUSD(basePrice)
	}
	min, max := tiers[0].Price, tiers[0].Price
	for _, t := range tiers[1:] {
		if t.Price.LessThan(min) {
			min = t.Price
		}
		if t.Price.GreaterThan(max) {
			max = t.Price
		}
	}
	if min.Equal(max) {
		return FormatUSD(min)
	}
	return FormatUSD(min) + " - " + FormatUSD(max)
}

// SelectTier returns the tier at index as a Selection. The index must be
// valid; callers guard bounds before invoking (an out-of-range index is a
// caller bug, not a runtime condition).
func SelectTier(tiers []Tier, index int) Selection {
	t := tiers[index]
	return Selection{Price: t.Price, Quantity: t.Quantity, Label: t.Label}
}

// TierFor resolves the tier applicable to a purchased quantity: the entry
// with the highest threshold not exceeding qty. Returns false when no tier
// threshold is met and the base price applies.
func TierFor(tiers []Tier, qty decimal.Decimal) (Tier, bool) {
	var best Tier
	found := false
	for _, t := range tiers {
		if t.Quantity.GreaterThan(qty) {
			continue
		}
		if !found || t.Quantity.GreaterThan(best.Quantity) {
			best = t
			found = true
		}
	}
	return best, found
}
