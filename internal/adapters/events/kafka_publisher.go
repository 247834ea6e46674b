// Package events publishes executed trades to a Kafka topic as a
// fire-and-forget audit stream.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// Topic carries one message per executed trade, keyed by user so a consumer
// sees each account's trades in order.
const Topic = "trades"

// tradeEvent is the JSON payload written per executed trade.
type tradeEvent struct {
	TradeID     string    `json:"tradeID"`
	UserID      string    `json:"userID"`
	Symbol      string    `json:"symbol"`
	CompanyName string    `json:"companyName"`
	Side        string    `json:"side"`
	Shares      int64     `json:"shares"`
	Price       string    `json:"price"`
	Total       string    `json:"total"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// KafkaTradePublisher writes trade events to Kafka. Failures are logged and
// swallowed: the trade is already committed and the stream is best effort.
type KafkaTradePublisher struct {
	writer *kafka.Writer
}

// NewKafkaTradePublisher creates a publisher for the given broker addresses.
func NewKafkaTradePublisher(brokers []string) *KafkaTradePublisher {
	return &KafkaTradePublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Ensure KafkaTradePublisher implements portssvc.TradeEventPublisher
var _ portssvc.TradeEventPublisher = (*KafkaTradePublisher)(nil)

// PublishTrade implements portssvc.TradeEventPublisher.
func (p *KafkaTradePublisher) PublishTrade(ctx context.Context, trade domain.Trade) {
	logger := middleware.GetLoggerFromCtx(ctx)

	data, err := json.Marshal(tradeEvent{
		TradeID:     trade.TradeID,
		UserID:      trade.UserID,
		Symbol:      trade.Symbol,
		CompanyName: trade.CompanyName,
		Side:        trade.Side(),
		Shares:      trade.Shares,
		Price:       trade.Price.String(),
		Total:       trade.Total.String(),
		ExecutedAt:  trade.ExecutedAt,
	})
	if err != nil {
		logger.Error("Failed to marshal trade event", slog.String("trade_id", trade.TradeID), slog.String("error", err.Error()))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(trade.UserID),
		Value: data,
	})
	if err != nil {
		logger.Error("Failed to publish trade event", slog.String("trade_id", trade.TradeID), slog.String("error", err.Error()))
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaTradePublisher) Close() error {
	return p.writer.Close()
}
