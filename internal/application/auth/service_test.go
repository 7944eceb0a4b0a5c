package auth

import (
	"context"
	"testing"

	"github.com/flavorforge/recipeai/internal/application/session"
	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/apiclient"
	"github.com/flavorforge/recipeai/internal/infrastructure/persistence/memory"
	"github.com/flavorforge/recipeai/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type ServiceTestSuite struct {
	suite.Suite
	api      *testutils.MockAuthAPI
	sessions *session.Manager
	service  *Service
	ctx      context.Context
	users    *testutils.UserFactory
}

func (s *ServiceTestSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T())
	s.api = new(testutils.MockAuthAPI)
	s.sessions = session.NewManager(memory.NewSessionStore(), "", logger)
	s.service = NewService(s.api, s.sessions, logger)
	s.ctx = context.Background()
	s.users = testutils.NewUserFactory(7)
}

func (s *ServiceTestSuite) TestLoginStoresTokenAndProfile() {
	profile := s.users.CreateUser()
	s.api.On("Login", s.ctx, profile.Email, "secret").
		Return(&user.Token{AccessToken: "jwt-abc", TokenType: "bearer"}, nil)
	s.api.On("Me", s.ctx, "jwt-abc").Return(&profile, nil)

	got, err := s.service.Login(s.ctx, "  "+profile.Email+" ", "secret")
	require.NoError(s.T(), err)

	assert.Equal(s.T(), profile.ID, got.ID)
	assert.True(s.T(), s.service.IsAuthenticated())
	assert.Equal(s.T(), "jwt-abc", s.sessions.BearerToken())
	current, ok := s.service.CurrentUser()
	require.True(s.T(), ok)
	assert.Equal(s.T(), profile.Email, current.Email)
}

func (s *ServiceTestSuite) TestLoginFailureLeavesSessionEmpty() {
	s.api.On("Login", s.ctx, "cook@example.com", "wrong").
		Return(nil, &apiclient.APIError{StatusCode: 401, Message: "Incorrect email or password"})

	_, err := s.service.Login(s.ctx, "cook@example.com", "wrong")

	assert.True(s.T(), apiclient.IsUnauthorized(err))
	assert.False(s.T(), s.service.IsAuthenticated())
	s.api.AssertNotCalled(s.T(), "Me", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestLoginValidation() {
	_, err := s.service.Login(s.ctx, " ", "secret")
	assert.ErrorIs(s.T(), err, ErrMissingCredentials)
	_, err = s.service.Login(s.ctx, "cook@example.com", "")
	assert.ErrorIs(s.T(), err, ErrMissingCredentials)
	s.api.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestSignup() {
	name, email, password := s.users.CreateCredentials()
	profile := user.User{ID: "new-user", Name: name, Email: email}
	s.api.On("Signup", s.ctx, name, email, password).
		Return(&user.Token{AccessToken: "jwt-new", TokenType: "bearer"}, nil)
	s.api.On("Me", s.ctx, "jwt-new").Return(&profile, nil)

	got, err := s.service.Signup(s.ctx, name, email, password)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "new-user", got.ID)
	assert.Equal(s.T(), "jwt-new", s.sessions.Token())

	_, err = s.service.Signup(s.ctx, "", email, password)
	assert.ErrorIs(s.T(), err, ErrMissingName)
}

func (s *ServiceTestSuite) TestProfileFailureDoesNotSignIn() {
	s.api.On("Login", s.ctx, "cook@example.com", "secret").
		Return(&user.Token{AccessToken: "jwt-abc"}, nil)
	s.api.On("Me", s.ctx, "jwt-abc").Return(nil, &apiclient.APIError{StatusCode: 500, Message: "boom"})

	_, err := s.service.Login(s.ctx, "cook@example.com", "secret")
	require.Error(s.T(), err)
	assert.False(s.T(), s.service.IsAuthenticated())
}

func (s *ServiceTestSuite) TestDemoLoginIsLocal() {
	got, err := s.service.DemoLogin(s.ctx)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), user.DemoUser(), *got)
	assert.True(s.T(), s.service.IsAuthenticated())
	assert.Empty(s.T(), s.sessions.BearerToken())
	s.api.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
	s.api.AssertNotCalled(s.T(), "Me", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestLogout() {
	_, err := s.service.DemoLogin(s.ctx)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.service.Logout(s.ctx))
	assert.False(s.T(), s.service.IsAuthenticated())
	_, ok := s.service.CurrentUser()
	assert.False(s.T(), ok)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
