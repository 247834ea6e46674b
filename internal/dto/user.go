package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// RegisterRequest defines the data needed to open a trading account.
// Confirmation must match Password, mirroring the registration form.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=64"`
	Password     string `json:"password" binding:"required,min=6"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// ChangePasswordRequest defines the data for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	Confirmation    string `json:"confirmation" binding:"required"`
}

// UserResponse defines the account data returned to clients. The password
// hash never leaves the service layer.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	Cash      decimal.Decimal `json:"cash"`
	CashText  string          `json:"cashText"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Cash:      u.Cash,
		CashText:  utils.FormatUSD(u.Cash),
		CreatedAt: u.CreatedAt,
	}
}
