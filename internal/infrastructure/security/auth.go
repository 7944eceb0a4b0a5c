// Package security provides authentication and request validation for the stub backend
package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

const (
	issuer = "recipeai"

	// used only outside production when no secret is configured
	developmentSecret = "recipeai-development-secret-change-me"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// AuthService issues and validates bearer tokens and checks passwords
type AuthService struct {
	users      outbound.UserRepository
	logger     *zap.Logger
	jwtSecret  []byte
	expiration time.Duration
	bcryptCost int
	now        func() time.Time
}

// Claims represents JWT claims structure; the subject is the user's email
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, users outbound.UserRepository, logger *zap.Logger) *AuthService {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		logger.Warn("No JWT secret configured, using the development secret")
		secret = developmentSecret
	}

	cost := cfg.Auth.BCryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	expiration := cfg.Auth.JWTExpiration
	if expiration <= 0 {
		expiration = 7 * 24 * time.Hour
	}

	return &AuthService{
		users:      users,
		logger:     logger,
		jwtSecret:  []byte(secret),
		expiration: expiration,
		bcryptCost: cost,
		now:        time.Now,
	}
}

// Signup creates an account and returns a token for it
func (a *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	hash, err := a.HashPassword(password)
	if err != nil {
		return "", err
	}

	account := &user.Account{
		User:         user.User{Name: strings.TrimSpace(name), Email: email},
		PasswordHash: hash,
	}
	if err := a.users.Create(ctx, account); err != nil {
		if errors.Is(err, outbound.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", err
	}

	a.logger.Info("User signed up", zap.String("user_id", account.ID))
	return a.GenerateAccessToken(account)
}

// Login checks credentials and returns a fresh token
func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := a.VerifyPassword(account.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return a.GenerateAccessToken(account)
}

// GenerateAccessToken creates a new access token
func (a *AuthService) GenerateAccessToken(account *user.Account) (string, error) {
	now := a.now()
	claims := &Claims{
		UserID: account.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   account.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates and parses a JWT token
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyToken resolves a token to the ID of a user that still exists
func (a *AuthService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	account, err := a.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return account.ID, nil
}

// CurrentUser returns the profile of userID
func (a *AuthService) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	account, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &account.User, nil
}

// HashPassword hashes a password using bcrypt
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against its hash
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
