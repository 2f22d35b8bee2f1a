package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item owned by a vendor. Stock is tracked per
// location in InventoryRecord. PricingTiers holds the volume-discount tiers
// as a JSON blob; it is parsed into typed tiers at the boundary before any
// pricing logic runs.
type Product struct {
	ID           string
	VendorID     string
	SKU          string // unique per vendor
	Name         string
	Description  string
	Category     string          // flower, edible, concentrate, ...
	Price        decimal.Decimal // base unit price
	PricingTiers json.RawMessage // [{"quantity":..,"price":..,"label":".."}]
	Attributes   json.RawMessage // strain, THC/CBD %, batch, free-form
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
