package utils

import (
	"fmt"
	"math"
)

// ToCents converts a dollar amount to the smallest currency unit, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts an amount in cents back to dollars.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// FormatUSD renders an amount with two decimals, e.g. "$380.70".
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
