package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/handlers"
	"github.com/tradesim/stock_trading_app/internal/middleware"
)

// --- Mock TradingService ---
type MockTradingService struct {
	mock.Mock
}

func (m *MockTradingService) Buy(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradingService) Sell(ctx context.Context, userID string, req dto.TradeRequest) (*domain.Trade, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradingService) ListTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TradingSvcFacade = (*MockTradingService)(nil)

// --- Test Suite ---
type TradingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockTradingService *MockTradingService
	jwtSecret          string
	userID             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TradingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "sts-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TradingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTradingService = new(MockTradingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTradingRoutes(v1, suite.mockTradingService)
}

func (suite *TradingHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TradingHandlerTestSuite) sampleTrade(shares int64, total string) *domain.Trade {
	return &domain.Trade{
		TradeID:     uuid.NewString(),
		UserID:      suite.userID,
		Symbol:      "AAA",
		CompanyName: "Triple A Corp",
		Shares:      shares,
		Price:       decimal.RequireFromString("50.00"),
		Total:       decimal.RequireFromString(total),
		ExecutedAt:  time.Now().UTC(),
	}
}

// --- Test Cases ---

func (suite *TradingHandlerTestSuite) TestBuy_Success() {
	expected := suite.sampleTrade(10, "500.00")
	suite.mockTradingService.On("Buy", mock.Anything, suite.userID, dto.TradeRequest{Symbol: "AAA", Shares: 10}).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "AAA", "shares": 10})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TradeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TradeID, resp.TradeID)
	suite.Equal("buy", resp.Side)
	suite.Equal(int64(10), resp.Shares)
	suite.Equal("$500.00", resp.TotalText)
	suite.mockTradingService.AssertExpectations(suite.T())
}

func (suite *TradingHandlerTestSuite) TestBuy_InsufficientFunds() {
	suite.mockTradingService.On("Buy", mock.Anything, suite.userID, mock.AnythingOfType("dto.TradeRequest")).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "AAA", "shares": 999})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Insufficient funds")
}

func (suite *TradingHandlerTestSuite) TestBuy_UnknownSymbol() {
	suite.mockTradingService.On("Buy", mock.Anything, suite.userID, mock.AnythingOfType("dto.TradeRequest")).
		Return(nil, apperrors.ErrSymbolNotFound).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "ZZZZ", "shares": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid symbol")
}

func (suite *TradingHandlerTestSuite) TestBuy_QuoteProviderDown() {
	suite.mockTradingService.On("Buy", mock.Anything, suite.userID, mock.AnythingOfType("dto.TradeRequest")).
		Return(nil, apperrors.ErrQuoteUnavailable).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "AAA", "shares": 1})

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *TradingHandlerTestSuite) TestBuy_RejectsZeroShares() {
	// gt=0 binding rejects this before the service is reached.
	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "AAA", "shares": 0})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradingService.AssertNotCalled(suite.T(), "Buy", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradingHandlerTestSuite) TestBuy_RejectsFractionalShares() {
	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "AAA", "shares": 1.5})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradingService.AssertNotCalled(suite.T(), "Buy", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradingHandlerTestSuite) TestBuy_RejectsMalformedSymbol() {
	w := suite.doJSON(http.MethodPost, "/api/v1/trades/buy", gin.H{"symbol": "NOT A TICKER!!", "shares": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradingService.AssertNotCalled(suite.T(), "Buy", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradingHandlerTestSuite) TestSell_Success() {
	expected := suite.sampleTrade(-5, "-250.00")
	suite.mockTradingService.On("Sell", mock.Anything, suite.userID, dto.TradeRequest{Symbol: "AAA", Shares: 5}).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/sell", gin.H{"symbol": "AAA", "shares": 5})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TradeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("sell", resp.Side)
	suite.Equal(int64(-5), resp.Shares)
	suite.Equal("-$250.00", resp.TotalText)
}

func (suite *TradingHandlerTestSuite) TestSell_Oversell() {
	suite.mockTradingService.On("Sell", mock.Anything, suite.userID, mock.AnythingOfType("dto.TradeRequest")).
		Return(nil, apperrors.ErrInvalidShares).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/trades/sell", gin.H{"symbol": "AAA", "shares": 50})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid share count")
}

func (suite *TradingHandlerTestSuite) TestListTrades_Success() {
	ledger := []domain.Trade{*suite.sampleTrade(-5, "-250.00"), *suite.sampleTrade(10, "500.00")}
	suite.mockTradingService.On("ListTrades", mock.Anything, suite.userID).Return(ledger, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/trades", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTradesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Trades, 2)
	suite.Equal("sell", resp.Trades[0].Side)
	suite.Equal("buy", resp.Trades[1].Side)
}

func (suite *TradingHandlerTestSuite) TestRequiresToken() {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTradingService.AssertNotCalled(suite.T(), "ListTrades", mock.Anything, mock.Anything)
}

func (suite *TradingHandlerTestSuite) TestRejectsExpiredToken() {
	claims := jwt.RegisteredClaims{
		Subject:   suite.userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signed)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "expired")
}

func TestTradingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TradingHandlerTestSuite))
}
