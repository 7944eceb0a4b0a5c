package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecipesPaging(t *testing.T) {
	var queries []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/recipes", r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"data":[{"id":"r1","title":"Soup"}],"meta":{"timestamp":"t","total":41}}`)
	}, nil)
	api := NewRecipeAPI(client)

	page, err := api.List(context.Background(), outbound.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	require.NotNil(t, page.Total)
	assert.Equal(t, 41, *page.Total)

	_, err = api.List(context.Background(), outbound.ListOptions{Limit: 20, Offset: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"limit=10&offset=0", "limit=20&offset=10"}, queries)
}

func TestGenerateAndSearch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/api/recipes/generate":
			var req recipe.GenerationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"rice", "egg"}, req.Ingredients)
			writeJSON(w, http.StatusOK, `{"data":{"id":"g1","title":"Egg Fried Rice","difficulty":"easy"},"meta":{"timestamp":"t"}}`)
		case "/api/recipes/search":
			var req recipe.SearchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "quick pasta", req.Query)
			writeJSON(w, http.StatusOK, `{"data":[{"id":"s1"},{"id":"s2"}],"meta":{"timestamp":"t"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}, nil)
	api := NewRecipeAPI(client)

	generated, err := api.Generate(context.Background(), recipe.GenerationRequest{Ingredients: []string{"rice", "egg"}})
	require.NoError(t, err)
	assert.Equal(t, "Egg Fried Rice", generated.Title)
	assert.Equal(t, recipe.DifficultyEasy, generated.Difficulty)

	results, err := api.Search(context.Background(), recipe.SearchRequest{Query: "quick pasta"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGetRecipeNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/abc", r.URL.Path)
		writeJSON(w, http.StatusNotFound, `{"error":{"message":"Recipe not found","status_code":404},"meta":{"timestamp":"t"}}`)
	}, nil)

	_, err := NewRecipeAPI(client).Get(context.Background(), "abc")
	assert.True(t, IsNotFound(err))
}

func TestRemoveItemEscapesName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/inventory/items/bell%20peppers", r.RequestURI)
		writeJSON(w, http.StatusOK, `{"data":{"deleted":true,"ingredient_name":"bell peppers"},"meta":{"timestamp":"t"}}`)
	}, nil)

	require.NoError(t, NewInventoryAPI(client).RemoveItem(context.Background(), "bell peppers"))
}

func TestInventoryEndpoints(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/inventory":
			writeJSON(w, http.StatusOK, `{"data":{"user_id":"default_user","items":[{"ingredient_name":"rice","quantity":"1 cup","added_at":"2024-01-01T00:00:00Z"}],"updated_at":"2024-01-01T00:00:00Z"},"meta":{"timestamp":"t"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/inventory/items":
			var req inventory.AddItemRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "egg", req.IngredientName)
			writeJSON(w, http.StatusOK, `{"data":{"ingredient_name":"egg","added_at":"2024-01-02T00:00:00Z"},"meta":{"timestamp":"t"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/inventory/match-recipes":
			writeJSON(w, http.StatusOK, `{"data":{"exact_matches":[{"id":"e1"}],"partial_matches":[{"id":"p1","missing_ingredients":["salt"],"match_percentage":0.8}]},"meta":{"timestamp":"t"}}`)
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}, nil)
	api := NewInventoryAPI(client)
	ctx := context.Background()

	inv, err := api.Get(ctx)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "1 cup", inv.Items[0].QuantityText())
	assert.False(t, inv.Items[0].Pending)

	item, err := api.AddItem(ctx, inventory.AddItemRequest{IngredientName: "egg"})
	require.NoError(t, err)
	assert.Equal(t, "egg", item.IngredientName)

	matches, err := api.MatchRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, matches.ExactMatches, 1)
	require.Len(t, matches.PartialMatches, 1)
	assert.Equal(t, []string{"salt"}, matches.PartialMatches[0].MissingIngredients)
	assert.InDelta(t, 0.8, matches.PartialMatches[0].MatchPercentage, 0.0001)
}

func TestAuthEndpoints(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"))
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "cook@example.com", req.Email)
			writeJSON(w, http.StatusOK, `{"access_token":"jwt-1","token_type":"bearer"}`)
		case "/api/auth/signup":
			var req SignupRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Cook", req.Name)
			writeJSON(w, http.StatusOK, `{"access_token":"jwt-2","token_type":"bearer"}`)
		case "/api/auth/me":
			assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{"id":"u1","name":"Cook","email":"cook@example.com"}`)
		}
	}, staticToken("stale-session-token"))
	api := NewAuthAPI(client)
	ctx := context.Background()

	token, err := api.Login(ctx, "cook@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token.AccessToken)

	token, err = api.Signup(ctx, "Cook", "cook@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", token.AccessToken)

	u, err := api.Me(ctx, "jwt-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestMeRejectionDoesNotExpireCurrentSession(t *testing.T) {
	var sent []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sent = append(sent, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
	}, staticToken("current-session"))

	expired := 0
	client.OnUnauthorized(func() { expired++ })

	_, err := NewAuthAPI(client).Me(context.Background(), "just-issued")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, []string{"Bearer just-issued"}, sent)
	assert.Zero(t, expired)
}
