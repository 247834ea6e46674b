package domain

import "github.com/shopspring/decimal"

// Holding is the ledger-side aggregate for one symbol: net shares and the
// signed sum of trade totals. It is derived on read and never persisted.
type Holding struct {
	Symbol      string
	CompanyName string
	NetShares   int64
	NetTotal    decimal.Decimal
}

// PortfolioLine is a Holding enriched with a live quote. Priced is false when
// the quote provider could not price the symbol at read time; in that case
// Price and Value are zero and the line still reports the share count.
type PortfolioLine struct {
	Symbol      string
	CompanyName string
	Shares      int64
	Priced      bool
	Price       decimal.Decimal
	Value       decimal.Decimal
}

// Portfolio is the full projected view for one account: current lines, cash,
// and the grand total of cash plus every priced position's market value.
type Portfolio struct {
	Lines []PortfolioLine
	Cash  decimal.Decimal
	Total decimal.Decimal
}
