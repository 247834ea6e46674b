package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portsrepo "github.com/tradesim/stock_trading_app/internal/core/ports/repositories"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/middleware"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// userService provides account registration, credential verification and
// password changes.
type userService struct {
	userRepo     portsrepo.UserRepositoryFacade
	startingCash decimal.Decimal
}

// NewUserService creates a new UserService. Every account it registers starts
// with startingCash issued to it.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, startingCash decimal.Decimal) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		startingCash: startingCash,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new account with the issuance cash balance.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Password != req.Confirmation {
		return nil, apperrors.ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password during registration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      req.Username,
		PasswordHash:  hash,
		Cash:          s.startingCash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %q: %w", req.Username, apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("new_user_id", user.UserID))
	return &user, nil
}

// VerifyCredentials checks a username/password pair. The same error is
// returned whether the user is missing or the password is wrong.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves an account by its identifier.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.NewPassword != req.Confirmation {
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("Failed to hash new password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		logger.Error("Failed to update password hash", slog.String("error", err.Error()))
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info("Password changed")
	return nil
}
