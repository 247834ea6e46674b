package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// quoteHandler exposes quote lookups to authenticated users.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// registerQuoteRoutes registers the quote route.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)
	rg.GET("/quotes/:symbol", h.getQuote)
}

// getQuote godoc
// @Summary Stock quote
// @Description Looks up the current name and price for a symbol.
// @Tags quotes
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Symbol does not exist"
// @Failure 502 {object} ErrorResponse "Quote provider unavailable"
// @Security BearerAuth
// @Router /quotes/{symbol} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	symbol := c.Param("symbol")

	quote, err := h.quoteService.Lookup(c.Request.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSymbolNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Stock symbol does not exist"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrQuoteUnavailable):
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Quote provider is currently unavailable"})
		default:
			logger.Error("Failed to look up quote", slog.String("symbol", symbol), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to look up quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}
