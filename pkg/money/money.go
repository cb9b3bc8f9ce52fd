package money

import "math"

// All monetary amounts are stored and computed in integer minor units
// (cents). Conversions to and from decimal currency happen only at the
// API boundary.

// TotalToleranceCents is the allowed drift between a caller-supplied
// order total and the total computed from its line items. Callers send
// decimal amounts, so a one-cent rounding difference is accepted.
const TotalToleranceCents int64 = 1

// FromDecimal converts a decimal currency amount to cents, rounding
// half away from zero. Truncation would turn 19.99 into 1998 on some
// float inputs.
func FromDecimal(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToDecimal converts cents to a decimal currency amount for display.
func ToDecimal(cents int64) float64 {
	return float64(cents) / 100
}
