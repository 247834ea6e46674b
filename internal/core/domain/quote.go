package domain

import "github.com/shopspring/decimal"

// Quote is a point-in-time name/price pair for a trading symbol.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}
