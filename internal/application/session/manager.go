// Package session holds the signed-in user and bearer token and keeps them
// in a SessionStore between runs
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flavorforge/recipeai/internal/domain/shared"
	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces the store keys
const DefaultKeyPrefix = "recipeai"

// Manager is the single source of truth for who is signed in.
// It satisfies apiclient.TokenSource.
type Manager struct {
	store   outbound.SessionStore
	prefix  string
	logger  *zap.Logger
	now     func() time.Time
	expired shared.Broadcaster[struct{}]

	mu    sync.RWMutex
	token string
	user  *user.User
}

// NewManager creates a session manager over store. An empty prefix selects
// DefaultKeyPrefix.
func NewManager(store outbound.SessionStore, prefix string, logger *zap.Logger) *Manager {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Manager{
		store:  store,
		prefix: prefix,
		logger: logger.Named("session"),
		now:    time.Now,
	}
}

func (m *Manager) tokenKey() string { return m.prefix + ":token" }
func (m *Manager) userKey() string  { return m.prefix + ":user" }

// Restore loads a previously saved session. A token whose JWT exp claim has
// passed is dropped from the store instead of being restored.
func (m *Manager) Restore(ctx context.Context) error {
	rawToken, err := m.store.Get(ctx, m.tokenKey())
	if errors.Is(err, outbound.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}

	rawUser, err := m.store.Get(ctx, m.userKey())
	if errors.Is(err, outbound.ErrKeyNotFound) {
		m.logger.Info("Discarding session without a user record")
		return m.purge(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read session user: %w", err)
	}

	var u user.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		m.logger.Warn("Discarding unreadable session user", zap.Error(err))
		return m.purge(ctx)
	}

	token := string(rawToken)
	if m.isExpired(token) {
		m.logger.Info("Stored token has expired", zap.String("user_id", u.ID))
		return m.purge(ctx)
	}

	m.mu.Lock()
	m.token = token
	m.user = &u
	m.mu.Unlock()

	m.logger.Debug("Session restored", zap.String("user_id", u.ID))
	return nil
}

// isExpired inspects the exp claim without verifying the signature; the
// backend remains the authority. Tokens that are not JWTs never expire here.
func (m *Manager) isExpired(token string) bool {
	if token == "" || user.IsDemoToken(token) {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !m.now().Before(exp.Time)
}

// Set stores token and u in memory and in the store
func (m *Manager) Set(ctx context.Context, token string, u user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.store.Set(ctx, m.tokenKey(), []byte(token), 0); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	if err := m.store.Set(ctx, m.userKey(), data, 0); err != nil {
		return fmt.Errorf("failed to save session user: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = &u
	m.mu.Unlock()
	return nil
}

// Clear forgets the session in memory and in the store
func (m *Manager) Clear(ctx context.Context) error {
	return m.purge(ctx)
}

// Expire clears the session after the backend rejected its token and
// notifies OnExpired subscribers. It does nothing when no one is signed in,
// so concurrent 401s produce a single notification.
func (m *Manager) Expire(ctx context.Context) {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return
	}
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, m.tokenKey(), m.userKey()); err != nil {
		m.logger.Error("Failed to clear expired session", zap.Error(err))
	}
	m.logger.Info("Session expired")
	m.expired.Publish(struct{}{})
}

// OnExpired registers fn to run when the session expires
func (m *Manager) OnExpired(fn func()) (unsubscribe func()) {
	return m.expired.Subscribe(func(struct{}) { fn() })
}

func (m *Manager) purge(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, m.tokenKey(), m.userKey()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the raw session token, which may be the demo sentinel
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// BearerToken returns the token to send to the backend. The demo session
// has none.
func (m *Manager) BearerToken() string {
	token := m.Token()
	if user.IsDemoToken(token) {
		return ""
	}
	return token
}

// User returns the signed-in user
func (m *Manager) User() (user.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return user.User{}, false
	}
	return *m.user, true
}

// IsAuthenticated reports whether a token is held
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// IsDemo reports whether the current session is the local demo session
func (m *Manager) IsDemo() bool {
	return user.IsDemoToken(m.Token())
}
