package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portsrepo "github.com/tradesim/stock_trading_app/internal/core/ports/repositories"
)

// UserRepository persists trading accounts in PostgreSQL.
type UserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure UserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// SaveUser inserts a new user row. A unique violation on the username maps to
// apperrors.ErrDuplicate.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, username, password_hash, cash, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.Cash,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("username already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id", userID)
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username", username)
}

func (r *UserRepository) findUser(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
        SELECT user_id, username, password_hash, cash, created_at, last_updated_at
        FROM users
        WHERE %s = $1;
    `, column)

	var user domain.User
	err := r.Pool.QueryRow(ctx, query, value).Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.Cash,
		&user.CreatedAt,
		&user.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash for a user.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1, last_updated_at = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, newHash, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
