package services

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
)

// PortfolioSvcFacade projects current holdings from the trade ledger.
type PortfolioSvcFacade interface {
	// GetPortfolio aggregates the user's ledger by symbol and re-prices each
	// held symbol with a live quote. A symbol that cannot be priced right now
	// is still returned, with Priced=false, rather than failing the report.
	GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error)
}
