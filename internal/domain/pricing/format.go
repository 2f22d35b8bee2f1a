package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a whole-dollar display price with thousands grouping.
// Fractional cents are floored (menus show "$35", not "$35.00"); this is a
// display simplification, not a financial rounding policy.
func FormatUSD(d decimal.Decimal) string {
	return usd.Sprintf("$%d", d.Floor().IntPart())
}
