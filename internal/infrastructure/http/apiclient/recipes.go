package apiclient

import (
	"context"
	"net/url"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// Default paging of the recipe list
const (
	DefaultListLimit  = 10
	DefaultListOffset = 0
)

// RecipeAPI wraps the recipe endpoints. It performs no validation of its own.
type RecipeAPI struct {
	client *Client
}

// NewRecipeAPI creates the recipe endpoint wrapper
func NewRecipeAPI(client *Client) *RecipeAPI {
	return &RecipeAPI{client: client}
}

var _ outbound.RecipeAPI = (*RecipeAPI)(nil)

// Generate asks the backend to generate a recipe from ingredients
func (a *RecipeAPI) Generate(ctx context.Context, req recipe.GenerationRequest) (*recipe.Recipe, error) {
	var resp Envelope[recipe.Recipe]
	if err := a.client.Post(ctx, "/api/recipes/generate", req, &resp, WithRoute("recipes.generate")); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Search runs a natural-language recipe search
func (a *RecipeAPI) Search(ctx context.Context, req recipe.SearchRequest) ([]recipe.Recipe, error) {
	var resp Envelope[[]recipe.Recipe]
	if err := a.client.Post(ctx, "/api/recipes/search", req, &resp, WithRoute("recipes.search")); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get fetches a single recipe by ID
func (a *RecipeAPI) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	var resp Envelope[recipe.Recipe]
	if err := a.client.Get(ctx, "/api/recipes/"+url.PathEscape(id), nil, &resp, WithRoute("recipes.get")); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// List fetches a page of recipes; zero options mean limit 10, offset 0
func (a *RecipeAPI) List(ctx context.Context, opts outbound.ListOptions) (*outbound.RecipePage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = DefaultListOffset
	}

	var resp Envelope[[]recipe.Recipe]
	params := Params{"limit": limit, "offset": offset}
	if err := a.client.Get(ctx, "/api/recipes", params, &resp, WithRoute("recipes.list")); err != nil {
		return nil, err
	}
	return &outbound.RecipePage{Recipes: resp.Data, Total: resp.Meta.Total}, nil
}
