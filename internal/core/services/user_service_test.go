package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/core/services"
	"github.com/tradesim/stock_trading_app/internal/dto"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	args := m.Called(ctx, userID, newHash)
	return args.Error(0)
}

// --- Test Suite Setup ---

var testIssuance = decimal.RequireFromString("10000.00")

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo, testIssuance)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username:     "alice",
		Password:     "hunter22",
		Confirmation: "hunter22",
	}

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("alice", user.Username)
	// Issuance: every new account starts with exactly the starting cash.
	suite.True(user.Cash.Equal(testIssuance))
	suite.True(saved.Cash.Equal(testIssuance))
	// The plaintext never reaches the repository.
	suite.NotEqual("hunter22", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("hunter22", saved.PasswordHash))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_PasswordMismatch() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username:     "alice",
		Password:     "hunter22",
		Confirmation: "hunter23",
	}

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrPasswordMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username:     "taken",
		Password:     "hunter22",
		Confirmation: "hunter22",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "alice",
		PasswordHash: hash,
		Cash:         testIssuance,
	}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(stored, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, "alice", "hunter22")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(stored, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, "alice", "wrong")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_UnknownUser() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.VerifyCredentials(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	// Missing user and wrong password are indistinguishable to the caller.
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	hash, err := utils.HashPassword("old-pass")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: userID, Username: "alice", PasswordHash: hash}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdatePasswordHash", ctx, userID, mock.MatchedBy(func(newHash string) bool {
		return utils.CheckPasswordHash("new-pass", newHash)
	})).Return(nil).Once()

	err = suite.service.ChangePassword(ctx, userID, dto.ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		Confirmation:    "new-pass",
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestChangePassword_Mismatch() {
	ctx := context.Background()

	err := suite.service.ChangePassword(ctx, uuid.NewString(), dto.ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		Confirmation:    "other",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPasswordMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	ctx := context.Background()
	userID := uuid.NewString()
	hash, err := utils.HashPassword("old-pass")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: userID, Username: "alice", PasswordHash: hash}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()

	err = suite.service.ChangePassword(ctx, userID, dto.ChangePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "new-pass",
		Confirmation:    "new-pass",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func TestRegister_HashNeverEmpty(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testIssuance)
	repo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "bob", Password: "secret99", Confirmation: "secret99",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
}
