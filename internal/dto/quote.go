package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// QuoteResponse is a point-in-time quote for a symbol.
type QuoteResponse struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	PriceText string          `json:"priceText"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:    q.Symbol,
		Name:      q.Name,
		Price:     q.Price,
		PriceText: utils.FormatUSD(q.Price),
	}
}
