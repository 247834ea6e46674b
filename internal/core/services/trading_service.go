package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portsrepo "github.com/tradesim/stock_trading_app/internal/core/ports/repositories"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// tradingService executes buys and sells: it prices the order with a live
// quote, then hands the signed ledger row to the repository, which applies it
// together with the cash update as one atomic unit.
type tradingService struct {
	tradeRepo portsrepo.TradeRepositoryFacade
	quoteSvc  portssvc.QuoteSvcFacade
	publisher portssvc.TradeEventPublisher
}

// NewTradingService creates a new TradingService. The publisher may be a noop;
// it must not be nil.
func NewTradingService(tradeRepo portsrepo.TradeRepositoryFacade, quoteSvc portssvc.QuoteSvcFacade, publisher portssvc.TradeEventPublisher) portssvc.TradingSvcFacade {
	return &tradingService{
		tradeRepo: tradeRepo,
		quoteSvc:  quoteSvc,
		publisher: publisher,
	}
}

// Ensure tradingService implements the portssvc.TradingSvcFacade interface
var _ portssvc.TradingSvcFacade = (*tradingService)(nil)

// Buy purchases shares at the current quoted price.
func (s *tradingService) Buy(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error) {
	return s.execute(ctx, userID, req, false)
}

// Sell disposes of shares at the current quoted price. The repository rejects
// the trade if the account's net holding of the symbol is smaller than the
// requested amount.
func (s *tradingService) Sell(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error) {
	return s.execute(ctx, userID, req, true)
}

func (s *tradingService) execute(ctx context.Context, userID string, req dto.TradeRequest, sell bool) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", apperrors.ErrValidation)
	}
	if req.Shares <= 0 {
		return nil, fmt.Errorf("%w: shares must be a positive whole number", apperrors.ErrInvalidShares)
	}

	quote, err := s.quoteSvc.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) || errors.Is(err, apperrors.ErrQuoteUnavailable) {
			return nil, err
		}
		logger.Error("Quote lookup failed", slog.String("symbol", symbol), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up quote for %s: %w", symbol, err)
	}

	shares := req.Shares
	total := quote.Price.Mul(decimal.NewFromInt(shares))
	if sell {
		shares = -shares
		total = total.Neg()
	}

	trade := domain.Trade{
		TradeID:     uuid.NewString(),
		UserID:      userID,
		Symbol:      quote.Symbol,
		CompanyName: quote.Name,
		Shares:      shares,
		Price:       quote.Price,
		Total:       total,
		ExecutedAt:  time.Now().UTC(),
	}

	if err := s.tradeRepo.ExecuteTrade(ctx, trade); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrInvalidShares) {
			return nil, err
		}
		logger.Error("Failed to execute trade", slog.String("symbol", symbol), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to execute trade: %w", err)
	}

	// Best-effort audit stream; never affects the committed trade.
	s.publisher.PublishTrade(ctx, trade)

	logger.Info("Trade executed",
		slog.String("trade_id", trade.TradeID),
		slog.String("symbol", trade.Symbol),
		slog.String("side", trade.Side()),
		slog.Int64("shares", trade.Shares),
		slog.String("total", trade.Total.String()),
	)
	return &trade, nil
}

// ListTrades returns the account's transaction history, newest first.
func (s *tradingService) ListTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	trades, err := s.tradeRepo.FindTradesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// NoopTradePublisher discards trade events. Used when no broker is configured.
type NoopTradePublisher struct{}

// PublishTrade implements portssvc.TradeEventPublisher.
func (NoopTradePublisher) PublishTrade(ctx context.Context, trade domain.Trade) {}
