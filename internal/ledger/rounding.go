package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Amounts are rounded half-to-even on the exact decimal product, so 2.5
// becomes 2 and 3.5 becomes 4 regardless of platform float behaviour.

var (
	maxWhole = decimal.NewFromInt(math.MaxInt64)
	minWhole = decimal.NewFromInt(math.MinInt64)
)

// Amount prices a row: round(quantity * rate). It reports false when the
// amount does not fit in an int64.
func Amount(quantity, rate decimal.Decimal) (int64, bool) {
	return whole(quantity.Mul(rate))
}

// GSTAmount computes round(subtotal * percent / 100). It reports false when
// the result does not fit in an int64.
func GSTAmount(subtotal int64, percent decimal.Decimal) (int64, bool) {
	return whole(decimal.NewFromInt(subtotal).Mul(percent).Shift(-2))
}

func whole(d decimal.Decimal) (int64, bool) {
	rounded := d.RoundBank(0)
	if rounded.GreaterThan(maxWhole) || rounded.LessThan(minWhole) {
		return 0, false
	}
	return rounded.IntPart(), true
}
