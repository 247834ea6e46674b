package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatUSD renders a decimal dollar amount for display, e.g. 9500 -> "$9,500.00".
// Amounts are rounded to the cent before formatting.
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
