package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/core/services"
)

type PortfolioServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockTradeRepo *MockTradeRepository
	mockQuote     *MockQuoteSvc
	service       portssvc.PortfolioSvcFacade
	userID        string
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockQuote = new(MockQuoteSvc)
	suite.service = services.NewPortfolioService(suite.mockUserRepo, suite.mockTradeRepo, suite.mockQuote)
	suite.userID = uuid.NewString()
}

func (suite *PortfolioServiceTestSuite) userWithCash(cash string) *domain.User {
	return &domain.User{
		UserID:   suite.userID,
		Username: "alice",
		Cash:     decimal.RequireFromString(cash),
	}
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_PricesHoldings() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithCash("9500.00"), nil).Once()
	suite.mockTradeRepo.On("FindHoldingsByUser", ctx, suite.userID).Return([]domain.Holding{
		{Symbol: "AAA", CompanyName: "Triple A Corp", NetShares: 10, NetTotal: decimal.RequireFromString("500.00")},
	}, nil).Once()
	suite.mockQuote.On("Lookup", ctx, "AAA").Return(&domain.Quote{
		Symbol: "AAA",
		Name:   "Triple A Corp",
		Price:  decimal.RequireFromString("52.00"),
	}, nil).Once()

	portfolio, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(portfolio.Lines, 1)

	line := portfolio.Lines[0]
	suite.True(line.Priced)
	suite.Equal(int64(10), line.Shares)
	// Holdings are valued at the current quote, not the booked cost.
	suite.True(line.Value.Equal(decimal.RequireFromString("520.00")))
	suite.True(portfolio.Cash.Equal(decimal.RequireFromString("9500.00")))
	suite.True(portfolio.Total.Equal(decimal.RequireFromString("10020.00")))
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_EmptyLedger() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithCash("10000.00"), nil).Once()
	suite.mockTradeRepo.On("FindHoldingsByUser", ctx, suite.userID).Return([]domain.Holding{}, nil).Once()

	portfolio, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(portfolio.Lines)
	suite.True(portfolio.Total.Equal(portfolio.Cash))
	suite.mockQuote.AssertNotCalled(suite.T(), "Lookup", ctx, "AAA")
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_UnpricedHolding() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithCash("9000.00"), nil).Once()
	suite.mockTradeRepo.On("FindHoldingsByUser", ctx, suite.userID).Return([]domain.Holding{
		{Symbol: "AAA", CompanyName: "Triple A Corp", NetShares: 10},
		{Symbol: "BBB", CompanyName: "Bravo Inc", NetShares: 4},
	}, nil).Once()
	suite.mockQuote.On("Lookup", ctx, "AAA").Return(&domain.Quote{
		Symbol: "AAA",
		Name:   "Triple A Corp",
		Price:  decimal.RequireFromString("50.00"),
	}, nil).Once()
	suite.mockQuote.On("Lookup", ctx, "BBB").Return(nil, apperrors.ErrQuoteUnavailable).Once()

	portfolio, err := suite.service.GetPortfolio(ctx, suite.userID)

	// One dark symbol degrades the read, it does not fail it.
	suite.Require().NoError(err)
	suite.Require().Len(portfolio.Lines, 2)

	suite.True(portfolio.Lines[0].Priced)
	suite.False(portfolio.Lines[1].Priced)
	suite.Equal(int64(4), portfolio.Lines[1].Shares)
	// The unpriced position contributes nothing to the grand total.
	suite.True(portfolio.Total.Equal(decimal.RequireFromString("9500.00")))
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_UnknownUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	portfolio, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Nil(portfolio)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPortfolioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}
