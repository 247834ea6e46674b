// Package rediscache adds a short-lived Redis cache in front of a quote
// provider so hot symbols don't hit the upstream API on every request.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// DefaultTTL bounds how stale a cached quote may be.
const DefaultTTL = 60 * time.Second

// QuoteCache decorates a QuoteSvcFacade with cache-aside reads. Cache
// failures degrade to the upstream provider; they never fail a lookup.
type QuoteCache struct {
	client *redis.Client
	next   portssvc.QuoteSvcFacade
	ttl    time.Duration
}

// NewQuoteCache creates a caching decorator around next.
func NewQuoteCache(client *redis.Client, next portssvc.QuoteSvcFacade, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuoteCache{client: client, next: next, ttl: ttl}
}

// Ensure QuoteCache implements portssvc.QuoteSvcFacade
var _ portssvc.QuoteSvcFacade = (*QuoteCache)(nil)

type cachedQuote struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

func cacheKey(symbol string) string {
	return "quote:" + symbol
}

// Lookup serves from Redis when a fresh entry exists, otherwise asks the
// upstream provider and stores the answer. Only successful lookups are
// cached, so a transient provider outage never pins a stale failure.
func (c *QuoteCache) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	val, err := c.client.Get(ctx, cacheKey(symbol)).Result()
	if err == nil {
		var cached cachedQuote
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			if price, decErr := decimal.NewFromString(cached.Price); decErr == nil {
				return &domain.Quote{Symbol: cached.Symbol, Name: cached.Name, Price: price}, nil
			}
		}
		logger.Warn("Discarding malformed cached quote", slog.String("symbol", symbol))
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("Quote cache read failed", slog.String("symbol", symbol), slog.String("error", err.Error()))
	}

	quote, err := c.next.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedQuote{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Price:  quote.Price.String(),
	})
	if err == nil {
		if setErr := c.client.Set(ctx, cacheKey(quote.Symbol), data, c.ttl).Err(); setErr != nil {
			logger.Warn("Quote cache write failed", slog.String("symbol", quote.Symbol), slog.String("error", setErr.Error()))
		}
	}

	return quote, nil
}
