package services

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/dto"
)

// TradingSvcFacade is the trade executor: it validates a buy or sell against
// the live quote and the account's state, then records it atomically.
type TradingSvcFacade interface {
	Buy(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error)
	Sell(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error)

	// ListTrades returns the account's transaction history, newest first.
	ListTrades(ctx context.Context, userID string) ([]domain.Trade, error)
}

// TradeEventPublisher receives every executed trade. Publishing is best
// effort: a publisher failure must never fail or roll back the trade.
type TradeEventPublisher interface {
	PublishTrade(ctx context.Context, trade domain.Trade)
}
