package pos

import "github.com/shopspring/decimal"

// Reconcile computes the close-out figures for a cash session (domain
// service, no I/O).
//
//	Expected = OpeningFloat + CashSales - Payouts
//	Variance = CountedTotal - Expected
//
// A positive variance is an overage, a negative one a shortage.
func Reconcile(openingFloat, cashSales, payouts, countedTotal decimal.Decimal) (expected, variance decimal.Decimal) {
	expected = openingFloat.Add(cashSales).Sub(payouts)
	variance = countedTotal.Sub(expected)
	return expected, variance
}
