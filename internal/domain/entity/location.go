package entity

import "time"

// Location is a physical or logical inventory-holding site (store, warehouse)
// against which quantity is tracked per product.
type Location struct {
	ID        string
	VendorID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
