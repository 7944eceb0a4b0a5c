package outbound

import (
	"context"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/user"
)

// ListOptions pages through the recipe list. Zero values select the defaults.
type ListOptions struct {
	Limit  int
	Offset int
}

// RecipePage is one page of the recipe list
type RecipePage struct {
	Recipes []recipe.Recipe
	Total   *int
}

// RecipeAPI is the recipe part of the backend
type RecipeAPI interface {
	Generate(ctx context.Context, req recipe.GenerationRequest) (*recipe.Recipe, error)
	Search(ctx context.Context, req recipe.SearchRequest) ([]recipe.Recipe, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	List(ctx context.Context, opts ListOptions) (*RecipePage, error)
}

// InventoryAPI is the pantry part of the backend
type InventoryAPI interface {
	Get(ctx context.Context) (*inventory.UserInventory, error)
	AddItem(ctx context.Context, req inventory.AddItemRequest) (*inventory.Item, error)
	RemoveItem(ctx context.Context, ingredientName string) error
	MatchRecipes(ctx context.Context) (*recipe.Matches, error)
}

// AuthAPI signs users in and resolves their profile
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*user.Token, error)
	Signup(ctx context.Context, name, email, password string) (*user.Token, error)
	Me(ctx context.Context, token string) (*user.User, error)
}
