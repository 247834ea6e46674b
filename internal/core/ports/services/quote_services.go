package services

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
)

// QuoteSvcFacade is the quote provider boundary. Implementations wrap an
// external price feed; decorators may add caching in front of it.
type QuoteSvcFacade interface {
	// Lookup returns the current name and price for a symbol.
	// Fails with apperrors.ErrSymbolNotFound when the provider does not know
	// the symbol, and apperrors.ErrQuoteUnavailable when the provider itself
	// cannot be reached or answers with an unexpected failure.
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}
