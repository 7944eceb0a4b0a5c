// Package auth signs users in and out on top of the session manager
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flavorforge/recipeai/internal/application/session"
	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"go.uber.org/zap"
)

// Local validation errors
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("name is required")
)

// Service implements login, signup, the demo bypass and logout
type Service struct {
	api     outbound.AuthAPI
	session *session.Manager
	logger  *zap.Logger
}

// NewService creates a new auth service
func NewService(api outbound.AuthAPI, sessions *session.Manager, logger *zap.Logger) *Service {
	return &Service{
		api:     api,
		session: sessions,
		logger:  logger.Named("auth-service"),
	}
}

// Login exchanges credentials for a token, resolves the profile with it and
// saves both
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("Login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return s.establish(ctx, token)
}

// Signup registers an account and signs it in
func (s *Service) Signup(ctx context.Context, name, email, password string) (*user.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, ErrMissingName
	}
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		s.logger.Info("Signup failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return s.establish(ctx, token)
}

func (s *Service) establish(ctx context.Context, token *user.Token) (*user.User, error) {
	profile, err := s.api.Me(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := s.session.Set(ctx, token.AccessToken, *profile); err != nil {
		return nil, err
	}

	s.logger.Info("Signed in", zap.String("user_id", profile.ID))
	return profile, nil
}

// DemoLogin signs in the fixed demo user without contacting the backend
func (s *Service) DemoLogin(ctx context.Context) (*user.User, error) {
	demo := user.DemoUser()
	if err := s.session.Set(ctx, user.DemoToken, demo); err != nil {
		return nil, err
	}
	return &demo, nil
}

// Logout forgets the current session
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser returns the signed-in user
func (s *Service) CurrentUser() (user.User, bool) {
	return s.session.User()
}

// IsAuthenticated reports whether anyone is signed in
func (s *Service) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}
