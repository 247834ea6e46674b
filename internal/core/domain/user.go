package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a trading account holder. Cash is the only mutable money field;
// everything else about a position is derived from the trade ledger.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	Cash         decimal.Decimal
	CreatedAt    time.Time
	LastUpdatedAt time.Time
}
