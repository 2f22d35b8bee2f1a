// Package stock implements the read-side inventory aggregation used by the
// POS and the public storefront: it folds flat per-location rows into one
// summary per product and derives a stock-status label from the total.
//
// Everything here is pure computation over already-fetched rows; no I/O, no
// shared state. The same input set always yields the same totals regardless
// of row order.
package stock

import "github.com/shopspring/decimal"

// Record is one inventory row: a product's quantity at one location, joined
// with the product metadata the summary carries through.
type Record struct {
	ProductID    string
	ProductName  string
	SKU          string
	Category     string
	Price        decimal.Decimal
	LocationID   string
	LocationName string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
}

// LocationQuantity is one entry of the per-location breakdown.
type LocationQuantity struct {
	LocationID   string
	LocationName string
	Quantity     decimal.Decimal
}

// ProductStock is the derived per-product summary. It is recomputed on every
// read and never persisted.
type ProductStock struct {
	ProductID   string
	ProductName string
	SKU         string
	Category    string
	Price       decimal.Decimal
	Total       decimal.Decimal
	Status      Status
	Locations   []LocationQuantity
}

// Aggregate groups records by product, sums quantities into a total, derives
// the status under the given policy and keeps a breakdown of the locations
// that actually hold stock. Zero-quantity locations contribute 0 to the total
// and are omitted from the breakdown. Output follows first-seen product order.
func Aggregate(records []Record, policy StatusPolicy) []ProductStock {
	var order []string
	groups := make(map[string]*ProductStock)

	for _, rec := range records {
		ps, ok := groups[rec.ProductID]
		if !ok {
			ps = &ProductStock{
				ProductID:   rec.ProductID,
				ProductName: rec.ProductName,
				SKU:         rec.SKU,
				Category:    rec.Category,
				Price:       rec.Price,
				Total:       decimal.Zero,
			}
			groups[rec.ProductID] = ps
			order = append(order, rec.ProductID)
		}
		ps.Total = ps.Total.Add(rec.Quantity)
		if rec.Quantity.GreaterThan(decimal.Zero) {
			ps.Locations = append(ps.Locations, LocationQuantity{
				LocationID:   rec.LocationID,
				LocationName: rec.LocationName,
				Quantity:     rec.Quantity,
			})
		}
	}

	out := make([]ProductStock, 0, len(order))
	for _, id := range order {
		ps := groups[id]
		ps.Status = policy.StatusFor(ps.Total)
		out = append(out, *ps)
	}
	return out
}
