package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portsrepo "github.com/tradesim/stock_trading_app/internal/core/ports/repositories"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// portfolioService derives current holdings from the trade ledger and
// re-prices them with live quotes on every read. Nothing here is persisted.
type portfolioService struct {
	userRepo  portsrepo.UserRepositoryFacade
	tradeRepo portsrepo.TradeRepositoryFacade
	quoteSvc  portssvc.QuoteSvcFacade
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(userRepo portsrepo.UserRepositoryFacade, tradeRepo portsrepo.TradeRepositoryFacade, quoteSvc portssvc.QuoteSvcFacade) portssvc.PortfolioSvcFacade {
	return &portfolioService{
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		quoteSvc:  quoteSvc,
	}
}

// Ensure portfolioService implements the portssvc.PortfolioSvcFacade interface
var _ portssvc.PortfolioSvcFacade = (*portfolioService)(nil)

// GetPortfolio aggregates the user's ledger by symbol and prices each held
// symbol. A symbol whose quote is momentarily unavailable is reported
// unpriced instead of failing the whole projection.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	holdings, err := s.tradeRepo.FindHoldingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate holdings: %w", err)
	}

	lines := make([]domain.PortfolioLine, 0, len(holdings))
	total := user.Cash
	for _, h := range holdings {
		line := domain.PortfolioLine{
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Shares:      h.NetShares,
		}

		quote, err := s.quoteSvc.Lookup(ctx, h.Symbol)
		if err != nil {
			// Degraded read: show the position without a market value.
			logger.Warn("Holding could not be priced", slog.String("symbol", h.Symbol), slog.String("error", err.Error()))
		} else {
			line.Priced = true
			line.Price = quote.Price
			line.Value = quote.Price.Mul(decimal.NewFromInt(h.NetShares))
			total = total.Add(line.Value)
		}
		lines = append(lines, line)
	}

	return &domain.Portfolio{
		Lines: lines,
		Cash:  user.Cash,
		Total: total,
	}, nil
}
