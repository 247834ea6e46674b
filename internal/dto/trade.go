package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// TradeRequest defines a buy or sell order: a symbol and a whole, positive
// share count. Fractional or non-positive counts are rejected at binding.
type TradeRequest struct {
	Symbol string `json:"symbol" binding:"required,ticker"`
	Shares int64  `json:"shares" binding:"required,gt=0"`
}

// TradeResponse defines one executed trade as returned to clients. Shares and
// total keep their ledger sign (negative for sells).
type TradeResponse struct {
	TradeID     string          `json:"tradeID"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Side        string          `json:"side"`
	Shares      int64           `json:"shares"`
	Price       decimal.Decimal `json:"price"`
	PriceText   string          `json:"priceText"`
	Total       decimal.Decimal `json:"total"`
	TotalText   string          `json:"totalText"`
	ExecutedAt  time.Time       `json:"executedAt"`
}

// ListTradesResponse wraps a user's transaction history.
type ListTradesResponse struct {
	Trades []TradeResponse `json:"trades"`
}

// ToTradeResponse converts a domain.Trade to TradeResponse DTO.
func ToTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:     t.TradeID,
		Symbol:      t.Symbol,
		CompanyName: t.CompanyName,
		Side:        t.Side(),
		Shares:      t.Shares,
		Price:       t.Price,
		PriceText:   utils.FormatUSD(t.Price),
		Total:       t.Total,
		TotalText:   utils.FormatUSD(t.Total),
		ExecutedAt:  t.ExecutedAt,
	}
}

// ToListTradesResponse converts a slice of domain.Trade to ListTradesResponse.
func ToListTradesResponse(trades []domain.Trade) ListTradesResponse {
	responses := make([]TradeResponse, len(trades))
	for i, trade := range trades {
		responses[i] = ToTradeResponse(&trade)
	}
	return ListTradesResponse{Trades: responses}
}
