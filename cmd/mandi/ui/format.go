package ui

import (
	"strings"

	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// groupInt renders a count with Indian digit grouping and no currency symbol.
func groupInt(n int) string {
	return strings.Replace(money.Format(decimal.NewFromInt(int64(n))), money.Symbol, "", 1)
}
