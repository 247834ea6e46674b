package repositories

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
)

// TradeRepositoryFacade defines persistence operations for the trade ledger.
type TradeRepositoryFacade interface {
	// ExecuteTrade appends the trade row and applies its cash delta to the
	// user's balance as one database transaction. The user row is locked for
	// the duration, so two trades on the same account cannot interleave.
	//
	// Inside the transaction it enforces the two balance rules:
	//   - apperrors.ErrInsufficientFunds if the trade would drive cash negative
	//   - apperrors.ErrInvalidShares if a sell exceeds the net shares currently
	//     held for the symbol
	// On either rejection nothing is written.
	ExecuteTrade(ctx context.Context, trade domain.Trade) error

	// FindTradesByUser returns the user's full ledger, newest first.
	FindTradesByUser(ctx context.Context, userID string) ([]domain.Trade, error)

	// FindHoldingsByUser aggregates the ledger by symbol, returning only
	// symbols with a non-zero net share count.
	FindHoldingsByUser(ctx context.Context, userID string) ([]domain.Holding, error)
}
