package apiclient

import (
	"context"
	"net/url"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// InventoryAPI wraps the pantry inventory endpoints
type InventoryAPI struct {
	client *Client
}

// NewInventoryAPI creates the inventory endpoint wrapper
func NewInventoryAPI(client *Client) *InventoryAPI {
	return &InventoryAPI{client: client}
}

var _ outbound.InventoryAPI = (*InventoryAPI)(nil)

// Get fetches the current user's inventory
func (a *InventoryAPI) Get(ctx context.Context) (*inventory.UserInventory, error) {
	var resp Envelope[inventory.UserInventory]
	if err := a.client.Get(ctx, "/api/inventory", nil, &resp, WithRoute("inventory.get")); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AddItem adds an ingredient, or updates its quantity when already present
func (a *InventoryAPI) AddItem(ctx context.Context, req inventory.AddItemRequest) (*inventory.Item, error) {
	var resp Envelope[*inventory.Item]
	if err := a.client.Post(ctx, "/api/inventory/items", req, &resp, WithRoute("inventory.add")); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RemoveItem deletes an ingredient; the name is path-escaped
func (a *InventoryAPI) RemoveItem(ctx context.Context, ingredientName string) error {
	var resp Envelope[struct {
		Deleted        bool   `json:"deleted"`
		IngredientName string `json:"ingredient_name"`
	}]
	path := "/api/inventory/items/" + url.PathEscape(ingredientName)
	return a.client.Delete(ctx, path, &resp, WithRoute("inventory.remove"))
}

// MatchRecipes asks the backend which recipes the inventory can cover
func (a *InventoryAPI) MatchRecipes(ctx context.Context) (*recipe.Matches, error) {
	var resp Envelope[recipe.Matches]
	if err := a.client.Post(ctx, "/api/inventory/match-recipes", nil, &resp, WithRoute("inventory.match")); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
