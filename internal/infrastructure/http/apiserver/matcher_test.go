package apiserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/test/testutils"
)

func TestMatchRecipes(t *testing.T) {
	inv := testutils.NewInventoryFactory(1).CreateInventory("u1", "Rice", "egg", "onion", "garlic", "soy sauce")
	recipes := []recipe.Recipe{
		testutils.NewRecipeBuilder().WithTitle("Fried Rice").WithIngredients("rice", "egg", "soy sauce").Build(),
		testutils.NewRecipeBuilder().WithTitle("Boiled Egg").WithIngredients("egg").Build(),
		testutils.NewRecipeBuilder().WithTitle("Garlic Rice").WithIngredients("rice", "garlic", "onion", "egg", "butter").Build(),
		testutils.NewRecipeBuilder().WithTitle("Omelette").WithIngredients("egg", "milk", "cheese").Build(),
		testutils.NewRecipeBuilder().WithTitle("Empty").WithIngredients().Build(),
	}

	m := MatchRecipes(&inv, recipes)

	require.Len(t, m.ExactMatches, 2)
	assert.Equal(t, "Boiled Egg", m.ExactMatches[0].Title)
	assert.Equal(t, "Fried Rice", m.ExactMatches[1].Title)
	assert.Empty(t, m.ExactMatches[0].MissingIngredients)

	require.Len(t, m.PartialMatches, 1)
	partial := m.PartialMatches[0]
	assert.Equal(t, "Garlic Rice", partial.Title)
	assert.Equal(t, []string{"butter"}, partial.MissingIngredients)
	assert.InDelta(t, 0.8, partial.MatchPercentage, 1e-9)
}

func TestMatchRecipesCountsEachIngredientOnce(t *testing.T) {
	inv := testutils.NewInventoryFactory(3).CreateInventory("u1", "salt", "pepper", "oil", "garlic")
	recipes := []recipe.Recipe{
		testutils.NewRecipeBuilder().WithTitle("Salted Beef").WithIngredients("salt", "Salt", "salt ", "salt", "beef").Build(),
		testutils.NewRecipeBuilder().WithTitle("Garlic Oil").WithIngredients("Garlic", "garlic", "oil", "OIL").Build(),
		testutils.NewRecipeBuilder().WithTitle("Seasoned Steak").WithIngredients("salt", "pepper", "oil", "garlic", "steak", "Steak").Build(),
	}

	m := MatchRecipes(&inv, recipes)

	assert.Equal(t, []string{"Garlic Oil"}, titles(m.ExactMatches))
	require.Len(t, m.PartialMatches, 1)
	partial := m.PartialMatches[0]
	assert.Equal(t, "Seasoned Steak", partial.Title)
	assert.Equal(t, []string{"steak"}, partial.MissingIngredients)
	assert.InDelta(t, 0.8, partial.MatchPercentage, 1e-9)
}

func TestMatchRecipesEmptyInventory(t *testing.T) {
	m := MatchRecipes(&inventory.UserInventory{UserID: inventory.DefaultUserID}, []recipe.Recipe{
		testutils.NewRecipeBuilder().Build(),
	})
	assert.NotNil(t, m.ExactMatches)
	assert.NotNil(t, m.PartialMatches)
	assert.Equal(t, 0, m.Total())
}

func TestMatchRecipesPartialOrdering(t *testing.T) {
	inv := testutils.NewInventoryFactory(2).CreateInventory("u1", "a", "b", "c", "d", "e", "f", "g", "h", "i")
	recipes := []recipe.Recipe{
		testutils.NewRecipeBuilder().WithTitle("Eighty").WithIngredients("a", "b", "c", "d", "x").Build(),
		testutils.NewRecipeBuilder().WithTitle("Ninety").WithIngredients("a", "b", "c", "d", "e", "f", "g", "h", "i", "x").Build(),
	}

	m := MatchRecipes(&inv, recipes)
	assert.Equal(t, []string{"Ninety", "Eighty"}, titles(m.PartialMatches))
}
