package handler

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Monetary amounts cross the API as decimal strings ("45.00") and are stored
// as int64 minor units with a fixed 2-digit exponent.

// parseAmount converts a decimal string to minor units. Sub-cent precision
// is rejected.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	return minor.IntPart(), nil
}

// formatAmount converts minor units back to a fixed two-decimal string.
func formatAmount(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}
