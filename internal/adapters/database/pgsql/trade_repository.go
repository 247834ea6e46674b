package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portsrepo "github.com/tradesim/stock_trading_app/internal/core/ports/repositories"
)

// TradeRepository persists the append-only trade ledger in PostgreSQL.
type TradeRepository struct {
	BaseRepository
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure TradeRepository implements portsrepo.TradeRepositoryFacade
var _ portsrepo.TradeRepositoryFacade = (*TradeRepository)(nil)

// ExecuteTrade appends the trade and applies its cash delta inside one
// database transaction. The user row is locked first, so concurrent trades on
// the same account serialize and the ledger invariant (cash + sum of totals
// equals issued cash) cannot be broken by interleaving.
func (r *TradeRepository) ExecuteTrade(ctx context.Context, trade domain.Trade) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	var cash decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT cash FROM users WHERE user_id = $1 FOR UPDATE;`, trade.UserID).Scan(&cash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	if trade.Shares < 0 {
		// Sell: the net holding, including every prior trade, must cover it.
		var held int64
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(shares), 0) FROM trades WHERE user_id = $1 AND symbol = $2;`,
			trade.UserID, trade.Symbol,
		).Scan(&held)
		if err != nil {
			return fmt.Errorf("failed to sum held shares: %w", err)
		}
		if held < -trade.Shares {
			return fmt.Errorf("selling %d shares of %s with %d held: %w", -trade.Shares, trade.Symbol, held, apperrors.ErrInvalidShares)
		}
	}

	// Total carries the signed cash delta: positive for buys, negative for
	// sells. Cash moves by the opposite amount.
	newCash := cash.Sub(trade.Total)
	if newCash.IsNegative() {
		return fmt.Errorf("cost %s exceeds cash %s: %w", trade.Total.String(), cash.String(), apperrors.ErrInsufficientFunds)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO trades (trade_id, user_id, symbol, company_name, shares, price, total, executed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `,
		trade.TradeID,
		trade.UserID,
		trade.Symbol,
		trade.CompanyName,
		trade.Shares,
		trade.Price,
		trade.Total,
		trade.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade %s: %w", trade.TradeID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET cash = $1, last_updated_at = $2 WHERE user_id = $3;`,
		newCash, time.Now().UTC(), trade.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTradesByUser returns the user's full ledger, newest first.
func (r *TradeRepository) FindTradesByUser(ctx context.Context, userID string) ([]domain.Trade, error) {
	query := `
        SELECT trade_id, user_id, symbol, company_name, shares, price, total, executed_at
        FROM trades
        WHERE user_id = $1
        ORDER BY executed_at DESC, trade_id;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := []domain.Trade{}
	for rows.Next() {
		var t domain.Trade
		err := rows.Scan(
			&t.TradeID,
			&t.UserID,
			&t.Symbol,
			&t.CompanyName,
			&t.Shares,
			&t.Price,
			&t.Total,
			&t.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", rows.Err())
	}

	return trades, nil
}

// FindHoldingsByUser aggregates the ledger by symbol. Fully closed positions
// (net zero shares) are dropped; the company name is the latest snapshot.
func (r *TradeRepository) FindHoldingsByUser(ctx context.Context, userID string) ([]domain.Holding, error) {
	query := `
        SELECT symbol,
               (ARRAY_AGG(company_name ORDER BY executed_at DESC))[1] AS company_name,
               SUM(shares)::bigint AS net_shares,
               SUM(total) AS net_total
        FROM trades
        WHERE user_id = $1
        GROUP BY symbol
        HAVING SUM(shares) <> 0
        ORDER BY symbol;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []domain.Holding{}
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.Symbol, &h.CompanyName, &h.NetShares, &h.NetTotal); err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		holdings = append(holdings, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", rows.Err())
	}

	return holdings, nil
}
