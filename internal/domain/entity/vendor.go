package entity

import "time"

// Vendor is a tenant of the platform: owns products, locations, users and
// storefront configuration. Slug is the public storefront identifier.
type Vendor struct {
	ID        string
	Name      string
	Slug      string // unique, URL-safe, used by the public menu
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
