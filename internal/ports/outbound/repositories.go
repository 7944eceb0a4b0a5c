// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces the application uses to reach the backend and local storage,
// and the stub backend uses to reach its database.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/user"
)

// ErrKeyNotFound is returned by a SessionStore when a key holds no value
var ErrKeyNotFound = errors.New("key not found")

// SessionStore persists the signed-in session between runs.
// It is a plain key/value store; the session manager owns the key names.
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ErrNotFound is returned by repositories when no record matches
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key is already taken
var ErrDuplicate = errors.New("record already exists")

// RecipeRepository stores the backend's recipe catalogue
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]recipe.Recipe, int64, error)
	All(ctx context.Context) ([]recipe.Recipe, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository stores backend accounts
type UserRepository interface {
	Create(ctx context.Context, account *user.Account) error
	FindByEmail(ctx context.Context, email string) (*user.Account, error)
	FindByID(ctx context.Context, id string) (*user.Account, error)
}

// InventoryRepository stores each user's pantry
type InventoryRepository interface {
	Get(ctx context.Context, userID string) (*inventory.UserInventory, error)
	Upsert(ctx context.Context, userID string, req inventory.AddItemRequest) (*inventory.Item, error)
	Remove(ctx context.Context, userID, ingredientName string) error
}
