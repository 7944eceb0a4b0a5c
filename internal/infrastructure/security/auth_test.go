package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, account *user.Account) error {
	args := m.Called(ctx, account)
	if args.Error(0) == nil && account.ID == "" {
		account.ID = "user-1"
	}
	return args.Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.Account, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(*user.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*user.Account, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*user.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// AuthServiceTestSuite provides a test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	authService *AuthService
	users       *mockUserRepository
	config      *config.Config
	ctx         context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.config = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration: time.Hour,
			BCryptCost:    bcrypt.MinCost,
		},
	}
	suite.users = new(mockUserRepository)
	suite.authService = NewAuthService(suite.config, suite.users, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) account(password string) *user.Account {
	hash, err := suite.authService.HashPassword(password)
	require.NoError(suite.T(), err)
	return &user.Account{
		User:         user.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"},
		PasswordHash: hash,
	}
}

func (suite *AuthServiceTestSuite) TestTokenRoundTrip() {
	token, err := suite.authService.GenerateAccessToken(suite.account("secret"))
	require.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateToken(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ada@example.com", claims.Subject)
	assert.Equal(suite.T(), "user-1", claims.UserID)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func (suite *AuthServiceTestSuite) TestValidateTokenRejects() {
	suite.Run("WrongSecret_ShouldFail", func() {
		other := NewAuthService(&config.Config{Auth: config.AuthConfig{JWTSecret: "another-secret"}}, suite.users, zap.NewNop())
		token, err := other.GenerateAccessToken(suite.account("secret"))
		require.NoError(suite.T(), err)

		_, err = suite.authService.ValidateToken(token)
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})

	suite.Run("Expired_ShouldFail", func() {
		token, err := suite.authService.GenerateAccessToken(suite.account("secret"))
		require.NoError(suite.T(), err)

		suite.authService.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { suite.authService.now = time.Now }()

		_, err = suite.authService.ValidateToken(token)
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})

	suite.Run("NoneAlgorithm_ShouldFail", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ada@example.com", "iss": issuer})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(suite.T(), err)

		_, err = suite.authService.ValidateToken(signed)
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})

	suite.Run("Garbage_ShouldFail", func() {
		_, err := suite.authService.ValidateToken("not.a.jwt")
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})
}

func (suite *AuthServiceTestSuite) TestSignup() {
	suite.users.On("Create", suite.ctx, mock.MatchedBy(func(a *user.Account) bool {
		return a.Email == "ada@example.com" && a.Name == "Ada" &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret")) == nil
	})).Return(nil).Once()

	token, err := suite.authService.Signup(suite.ctx, " Ada ", "ada@example.com", "secret")
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
	suite.users.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignupDuplicate() {
	suite.users.On("Create", suite.ctx, mock.Anything).Return(outbound.ErrDuplicate).Once()

	_, err := suite.authService.Signup(suite.ctx, "Ada", "ada@example.com", "secret")
	assert.ErrorIs(suite.T(), err, ErrUserExists)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	account := suite.account("secret")
	suite.users.On("FindByEmail", suite.ctx, "ada@example.com").Return(account, nil)
	suite.users.On("FindByEmail", suite.ctx, "nobody@example.com").Return(nil, outbound.ErrNotFound)

	token, err := suite.authService.Login(suite.ctx, "ada@example.com", "secret")
	require.NoError(suite.T(), err)

	userID, err := suite.authService.VerifyToken(suite.ctx, token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user-1", userID)

	_, err = suite.authService.Login(suite.ctx, "ada@example.com", "wrong")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, err = suite.authService.Login(suite.ctx, "nobody@example.com", "secret")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestVerifyTokenForDeletedUser() {
	token, err := suite.authService.GenerateAccessToken(suite.account("secret"))
	require.NoError(suite.T(), err)
	suite.users.On("FindByEmail", suite.ctx, "ada@example.com").Return(nil, outbound.ErrNotFound)

	_, err = suite.authService.VerifyToken(suite.ctx, token)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestDevelopmentSecretFallback() {
	svc := NewAuthService(&config.Config{}, suite.users, zap.NewNop())
	assert.Equal(suite.T(), []byte(developmentSecret), svc.jwtSecret)
	assert.Equal(suite.T(), bcrypt.DefaultCost, svc.bcryptCost)
	assert.Equal(suite.T(), 7*24*time.Hour, svc.expiration)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
