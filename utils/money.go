package utils

import "math"

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. All computed amounts (discounts, refund shares, totals) pass
// through here before being persisted or returned.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToPaise converts a rupee amount to integer paise, rounding to the
// nearest paisa. Gateway amounts are always handled as integer paise so
// float representation error can neither shift the charged amount nor
// fail an equality check against a captured payment.
func ToPaise(v float64) int {
	return int(math.Round(Round2(v) * 100))
}
