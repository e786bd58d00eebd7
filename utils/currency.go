package utils

import (
	"github.com/shopspring/decimal"
)

// FormatUSD renders a fixed-point amount for display, e.g. 12.99 -> "$12.99".
// Money stays decimal everywhere else; this is the presentation boundary.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
