package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input to create a product. PricingTiers is the raw
// tier blob; it is validated through the pricing parser before persisting.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	PricingTiers json.RawMessage `json:"pricing_tiers"`
	Attributes   json.RawMessage `json:"attributes"`
}

// UpdateProductRequest input to update a product.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	PricingTiers json.RawMessage  `json:"pricing_tiers"`
	Attributes   json.RawMessage  `json:"attributes"`
}

// ProductResponse product output. DisplayPrice is the computed tier price
// range (or base price when the product has no tiers).
type ProductResponse struct {
	ID           string          `json:"id"`
	VendorID     string          `json:"vendor_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"display_price"`
	PricingTiers json.RawMessage `json:"pricing_tiers,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// TierSelectionResponse a resolved tier surfaced to the POS cart.
type TierSelectionResponse struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Label    string          `json:"label"`
}
