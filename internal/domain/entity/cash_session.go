package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cash session states.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// CashSession is one register shift at a location: opened with a float,
// closed with a counted drawer total. Expected and Variance are computed at
// close time (expected = opening + cash sales - payouts).
type CashSession struct {
	ID           string
	VendorID     string
	LocationID   string
	Status       string
	OpeningFloat decimal.Decimal
	CashSales    decimal.Decimal
	Payouts      decimal.Decimal
	CountedTotal decimal.Decimal
	Expected     decimal.Decimal
	Variance     decimal.Decimal
	OpenedBy     string
	OpenedAt     time.Time
	ClosedAt     *time.Time
}
