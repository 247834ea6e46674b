package services

import (
	"context"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/dto"
)

// UserSvcFacade defines account operations: registration, credential checks
// and password changes.
type UserSvcFacade interface {
	// Register creates an account funded with the configured starting cash.
	// Fails with apperrors.ErrDuplicate if the username is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyCredentials returns the user when username and password match,
	// apperrors.ErrInvalidCredentials otherwise. It never reveals whether the
	// username or the password was wrong.
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ChangePassword verifies the current password and stores a hash of the
	// new one. Fails with apperrors.ErrInvalidCredentials or
	// apperrors.ErrPasswordMismatch.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}
