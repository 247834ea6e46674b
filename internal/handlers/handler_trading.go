package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// tradingHandler handles buy/sell orders and transaction history.
type tradingHandler struct {
	tradingService portssvc.TradingSvcFacade
}

// newTradingHandler creates a new tradingHandler.
func newTradingHandler(ts portssvc.TradingSvcFacade) *tradingHandler {
	return &tradingHandler{
		tradingService: ts,
	}
}

// RegisterTradingRoutes registers all trading-related routes.
func RegisterTradingRoutes(rg *gin.RouterGroup, tradingService portssvc.TradingSvcFacade) {
	h := newTradingHandler(tradingService)

	trades := rg.Group("/trades")
	{
		trades.GET("", h.listTrades)
		trades.POST("/buy", h.buy)
		trades.POST("/sell", h.sell)
	}
}

// buy godoc
// @Summary Buy shares
// @Description Buys shares of a symbol at the current quoted price.
// @Tags trades
// @Accept json
// @Produce json
// @Param order body dto.TradeRequest true "Buy order"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse "Invalid symbol or share count, or insufficient funds"
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Quote provider unavailable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/buy [post]
func (h *tradingHandler) buy(c *gin.Context) {
	h.execute(c, h.tradingService.Buy)
}

// sell godoc
// @Summary Sell shares
// @Description Sells shares of a held symbol at the current quoted price.
// @Tags trades
// @Accept json
// @Produce json
// @Param order body dto.TradeRequest true "Sell order"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse "Invalid symbol or share count, or more shares than held"
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Quote provider unavailable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/sell [post]
func (h *tradingHandler) sell(c *gin.Context) {
	h.execute(c, h.tradingService.Sell)
}

// execute binds the order, runs it through the given service operation and
// maps domain rejections to HTTP statuses.
func (h *tradingHandler) execute(c *gin.Context, op func(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	trade, err := op(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSymbolNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid symbol"})
		case errors.Is(err, apperrors.ErrInvalidShares):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid share count"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient funds"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrQuoteUnavailable):
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Quote provider is currently unavailable"})
		default:
			logger.Error("Failed to execute trade", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to execute trade"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// listTrades godoc
// @Summary Transaction history
// @Description Returns every executed trade for the account, newest first.
// @Tags trades
// @Produce json
// @Success 200 {object} dto.ListTradesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades [get]
func (h *tradingHandler) listTrades(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	trades, err := h.tradingService.ListTrades(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list trades", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list trades"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTradesResponse(trades))
}
