package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one executed buy or sell, recorded exactly once and never updated.
// Shares are signed: positive for a buy, negative for a sell. Total is always
// shares x price, so it carries the signed cash delta of the trade and the
// ledger invariant holds: for any user, cash + sum(total) equals the cash the
// account was issued with.
type Trade struct {
	TradeID     string
	UserID      string
	Symbol      string
	CompanyName string
	Shares      int64
	Price       decimal.Decimal
	Total       decimal.Decimal
	ExecutedAt  time.Time
}

// Side reports "buy" or "sell" based on the sign of Shares.
func (t Trade) Side() string {
	if t.Shares < 0 {
		return "sell"
	}
	return "buy"
}
