// Package inbound defines the interfaces for inbound ports (primary/driving adapters).
// The CLI depends on these rather than on the concrete application services.
package inbound

import (
	"context"

	"github.com/flavorforge/recipeai/internal/domain/user"
)

// Authenticator signs users in and out
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
	Signup(ctx context.Context, name, email, password string) (*user.User, error)
	DemoLogin(ctx context.Context) (*user.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (user.User, bool)
	IsAuthenticated() bool
}

// SessionWatcher exposes who is signed in and when the backend revokes it
type SessionWatcher interface {
	User() (user.User, bool)
	IsDemo() bool
	OnExpired(fn func()) (unsubscribe func())
}
