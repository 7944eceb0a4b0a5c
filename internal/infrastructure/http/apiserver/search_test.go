package apiserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/test/testutils"
)

func catalogue() []recipe.Recipe {
	recipes := []recipe.Recipe{
		testutils.NewRecipeBuilder().WithTitle("Tomato Pasta").WithIngredients("pasta", "tomato").WithCuisine("Italian").WithTags().Build(),
		testutils.NewRecipeBuilder().WithTitle("Pasta Primavera").WithIngredients("pasta", "zucchini", "peas").WithCuisine("Italian").WithTags("vegetarian").Build(),
		testutils.NewRecipeBuilder().WithTitle("Chana Masala").WithIngredients("chickpeas", "tomato", "onion").WithCuisine("Indian").WithTags("vegan").Build(),
		testutils.NewRecipeBuilder().WithTitle("Beef Tacos").WithIngredients("beef", "tortilla").WithCuisine("Mexican").WithTags().Build(),
	}
	for i := range recipes {
		recipes[i].Description = "A weeknight favourite."
	}
	return recipes
}

func titles(recipes []recipe.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestRankRecipesOrdersByScore(t *testing.T) {
	got := RankRecipes(catalogue(), recipe.SearchRequest{Query: "tomato pasta"})
	require.NotEmpty(t, got)
	assert.Equal(t, "Tomato Pasta", got[0].Title)
	assert.NotContains(t, titles(got), "Beef Tacos")
}

func TestRankRecipesCuisineAndTags(t *testing.T) {
	got := RankRecipes(catalogue(), recipe.SearchRequest{Query: "something vegan and indian"})
	require.NotEmpty(t, got)
	assert.Equal(t, "Chana Masala", got[0].Title)
}

func TestRankRecipesAvailableIngredientsBreakTies(t *testing.T) {
	got := RankRecipes(catalogue(), recipe.SearchRequest{
		Query:                "italian",
		AvailableIngredients: []string{"Zucchini", "peas"},
	})
	assert.Equal(t, []string{"Pasta Primavera", "Tomato Pasta"}, titles(got))
}

func TestRankRecipesLimit(t *testing.T) {
	got := RankRecipes(catalogue(), recipe.SearchRequest{Query: "pasta", Limit: 1})
	assert.Len(t, got, 1)
}

func TestRankRecipesNoMatches(t *testing.T) {
	got := RankRecipes(catalogue(), recipe.SearchRequest{Query: "sushi"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQueryTermsDropsStopWords(t *testing.T) {
	assert.Equal(t, []string{"spicy", "gluten-free", "noodles"}, queryTerms("Spicy gluten-free noodles, with a recipe!"))
	assert.Equal(t, []string{"the", "recipe"}, queryTerms("the recipe"))
}
