package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW INPUT COERCION
// =============================================================================
// Form input arrives as text. These helpers never fail: anything that is not
// a usable number becomes the field's default.

// CoerceMonths turns raw input into a billable duration.
// Absent, zero, negative and non-numeric input becomes 1. Fractions truncate.
func CoerceMonths(raw string) int {
	n, ok := parseWhole(raw)
	if !ok || n < 1 {
		return 1
	}
	return int(n)
}

// CoerceAmount turns raw input into a non-negative amount.
// Absent, negative and non-numeric input becomes 0. Fractions truncate.
func CoerceAmount(raw string) Amount {
	n, ok := parseWhole(raw)
	if !ok || n < 0 {
		return 0
	}
	return Amount(n)
}

// MaxWhole bounds every numeric input the calculator accepts, so that rent
// times months plus deposit always fits in an Amount.
const MaxWhole = 1_000_000_000

// BoundWhole saturates n into [-MaxWhole, MaxWhole].
func BoundWhole(n int64) int64 {
	return max(-MaxWhole, min(n, MaxWhole))
}

var maxWhole = decimal.NewFromInt(MaxWhole)

func parseWhole(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxWhole) {
		d = maxWhole
	}
	if d.LessThan(maxWhole.Neg()) {
		d = maxWhole.Neg()
	}
	return d.IntPart(), true
}
