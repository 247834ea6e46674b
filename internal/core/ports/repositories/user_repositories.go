package repositories

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for trading accounts.
type UserRepositoryFacade interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate if the
	// username is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID returns apperrors.ErrNotFound if no such user exists.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername returns apperrors.ErrNotFound if no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdatePasswordHash replaces the stored password hash for a user.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}
