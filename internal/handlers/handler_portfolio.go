package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// portfolioHandler serves the projected holdings view.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
}

// newPortfolioHandler creates a new portfolioHandler.
func newPortfolioHandler(ps portssvc.PortfolioSvcFacade) *portfolioHandler {
	return &portfolioHandler{
		portfolioService: ps,
	}
}

// registerPortfolioRoutes registers the portfolio route.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvcFacade) {
	h := newPortfolioHandler(portfolioService)
	rg.GET("/portfolio", h.getPortfolio)
}

// getPortfolio godoc
// @Summary Current portfolio
// @Description Returns current holdings priced with live quotes, remaining cash and the grand total. Holdings that cannot be priced right now are returned without a market value.
// @Tags portfolio
// @Produce json
// @Success 200 {object} dto.PortfolioResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [get]
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to project portfolio", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve portfolio"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioResponse(portfolio))
}
