package stock

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts a loosely typed quantity value (number, numeric
// string, json.Number, nil) into a decimal. Malformed or missing values
// degrade to zero; a bad quantity is treated the same as an empty location.
func ParseQuantity(v any) decimal.Decimal {
	switch q := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return q
	case float64:
		return decimal.NewFromFloat(q)
	case int:
		return decimal.NewFromInt(int64(q))
	case int64:
		return decimal.NewFromInt(q)
	case json.Number:
		d, err := decimal.NewFromString(q.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(q))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Quantity is a decimal with a tolerant JSON decoder for rows coming from
// loosely typed sources (legacy platform exports, spreadsheet dumps) where a
// quantity may arrive as a number, a quoted string, null or garbage.
type Quantity struct {
	decimal.Decimal
}

// UnmarshalJSON accepts number, string, or null; anything unparseable
// decodes as zero rather than failing the whole payload.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		q.Decimal = decimal.Zero
		return nil
	}
	q.Decimal = ParseQuantity(v)
	return nil
}

// MarshalJSON emits the plain decimal value.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.Decimal.MarshalJSON()
}
