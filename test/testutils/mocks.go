// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockRecipeAPI provides a mock implementation of outbound.RecipeAPI
type MockRecipeAPI struct {
	mock.Mock
}

var _ outbound.RecipeAPI = (*MockRecipeAPI)(nil)

// Generate mocks recipe generation
func (m *MockRecipeAPI) Generate(ctx context.Context, req recipe.GenerationRequest) (*recipe.Recipe, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search mocks recipe search
func (m *MockRecipeAPI) Search(ctx context.Context, req recipe.SearchRequest) ([]recipe.Recipe, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.([]recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

// Get mocks recipe lookup
func (m *MockRecipeAPI) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

// List mocks the recipe list
func (m *MockRecipeAPI) List(ctx context.Context, opts outbound.ListOptions) (*outbound.RecipePage, error) {
	args := m.Called(ctx, opts)
	if r := args.Get(0); r != nil {
		return r.(*outbound.RecipePage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockInventoryAPI provides a mock implementation of outbound.InventoryAPI
type MockInventoryAPI struct {
	mock.Mock
}

var _ outbound.InventoryAPI = (*MockInventoryAPI)(nil)

// Get mocks the inventory fetch
func (m *MockInventoryAPI) Get(ctx context.Context) (*inventory.UserInventory, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*inventory.UserInventory), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddItem mocks adding an item
func (m *MockInventoryAPI) AddItem(ctx context.Context, req inventory.AddItemRequest) (*inventory.Item, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

// RemoveItem mocks removing an item
func (m *MockInventoryAPI) RemoveItem(ctx context.Context, ingredientName string) error {
	args := m.Called(ctx, ingredientName)
	return args.Error(0)
}

// MatchRecipes mocks recipe matching
func (m *MockInventoryAPI) MatchRecipes(ctx context.Context) (*recipe.Matches, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*recipe.Matches), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthAPI provides a mock implementation of outbound.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

var _ outbound.AuthAPI = (*MockAuthAPI)(nil)

// Login mocks sign-in
func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*user.Token, error) {
	args := m.Called(ctx, email, password)
	if r := args.Get(0); r != nil {
		return r.(*user.Token), args.Error(1)
	}
	return nil, args.Error(1)
}

// Signup mocks registration
func (m *MockAuthAPI) Signup(ctx context.Context, name, email, password string) (*user.Token, error) {
	args := m.Called(ctx, name, email, password)
	if r := args.Get(0); r != nil {
		return r.(*user.Token), args.Error(1)
	}
	return nil, args.Error(1)
}

// Me mocks the profile lookup
func (m *MockAuthAPI) Me(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if r := args.Get(0); r != nil {
		return r.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}
