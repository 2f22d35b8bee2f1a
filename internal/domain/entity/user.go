package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleBudtender = "budtender"
)

// User represents a platform user (belongs to a Vendor).
type User struct {
	ID           string
	VendorID     string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Role         string // admin, manager, budtender
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
