package stock

import "github.com/shopspring/decimal"

// Status is the derived stock label exposed to UI surfaces.
type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
)

// StatusPolicy maps an aggregate quantity to a Status. The POS and the public
// storefront intentionally use different policies; each surface picks its
// policy once at wiring time instead of duplicating thresholds in call sites.
type StatusPolicy interface {
	StatusFor(total decimal.Decimal) Status
}

// lowStockThreshold is the POS boundary: a total of exactly 10 is low_stock.
var lowStockThreshold = decimal.NewFromInt(10)

// posPolicy is the three-tier POS policy: >10 in_stock, >0 low_stock,
// otherwise out_of_stock.
type posPolicy struct{}

func (posPolicy) StatusFor(total decimal.Decimal) Status {
	switch {
	case total.GreaterThan(lowStockThreshold):
		return StatusInStock
	case total.GreaterThan(decimal.Zero):
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// storefrontPolicy is the binary public-menu policy: anything above zero is
// in_stock.
type storefrontPolicy struct{}

func (storefrontPolicy) StatusFor(total decimal.Decimal) Status {
	if total.GreaterThan(decimal.Zero) {
		return StatusInStock
	}
	return StatusOutOfStock
}

// Surface policies.
var (
	PolicyPOS        StatusPolicy = posPolicy{}
	PolicyStorefront StatusPolicy = storefrontPolicy{}
)
