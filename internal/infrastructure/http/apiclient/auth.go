package apiclient

import (
	"context"

	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// AuthAPI wraps the authentication endpoints. Unlike the data endpoints
// these answer with bare objects rather than an envelope.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint wrapper
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

var _ outbound.AuthAPI = (*AuthAPI)(nil)

// LoginRequest represents login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents registration request payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*user.Token, error) {
	var token user.Token
	req := LoginRequest{Email: email, Password: password}
	if err := a.client.Post(ctx, "/api/auth/login", req, &token, WithBearerToken(""), WithRoute("auth.login")); err != nil {
		return nil, err
	}
	return &token, nil
}

// Signup creates an account and returns its bearer token
func (a *AuthAPI) Signup(ctx context.Context, name, email, password string) (*user.Token, error) {
	var token user.Token
	req := SignupRequest{Name: name, Email: email, Password: password}
	if err := a.client.Post(ctx, "/api/auth/signup", req, &token, WithBearerToken(""), WithRoute("auth.signup")); err != nil {
		return nil, err
	}
	return &token, nil
}

// Me resolves the profile that token belongs to
func (a *AuthAPI) Me(ctx context.Context, token string) (*user.User, error) {
	var u user.User
	if err := a.client.Get(ctx, "/api/auth/me", nil, &u, WithBearerToken(token), WithRoute("auth.me")); err != nil {
		return nil, err
	}
	return &u, nil
}
