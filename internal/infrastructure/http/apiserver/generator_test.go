package apiserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	g := NewGenerator()
	req := recipe.GenerationRequest{Ingredients: []string{"tofu", "spinach"}}

	first, err := g.Generate(req)
	require.NoError(t, err)
	second, err := g.Generate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first.Title, "Tofu")
	assert.Equal(t, recipe.DifficultyEasy, first.Difficulty)
	assert.Nil(t, first.CuisineType)
	assert.NotEmpty(t, first.Instructions)
	assert.Contains(t, first.Instructions[0], "tofu and spinach")
}

func TestGeneratorHonoursRequest(t *testing.T) {
	hard := recipe.DifficultyHard
	cuisine := "  mexican "

	r, err := NewGenerator().Generate(recipe.GenerationRequest{
		Ingredients:         []string{" Beans ", "corn", "BEANS", ""},
		DietaryRestrictions: []string{"Vegan", "vegan"},
		CuisineType:         &cuisine,
		Difficulty:          &hard,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"beans", "corn"}, r.IngredientNames())
	assert.Equal(t, "Mexican", r.Cuisine())
	assert.True(t, len(r.Title) > len("Mexican Beans"))
	assert.Equal(t, recipe.DifficultyHard, r.Difficulty)
	assert.Equal(t, []string{"vegan"}, r.DietaryTags)
	assert.Equal(t, 60, r.CookingTimeMinutes)
}

func TestGeneratorDefaultDifficulty(t *testing.T) {
	tests := []struct {
		ingredients []string
		want        recipe.Difficulty
	}{
		{[]string{"a", "b", "c"}, recipe.DifficultyEasy},
		{[]string{"a", "b", "c", "d"}, recipe.DifficultyMedium},
		{[]string{"a", "b", "c", "d", "e", "f", "g"}, recipe.DifficultyHard},
	}
	for _, tt := range tests {
		r, err := NewGenerator().Generate(recipe.GenerationRequest{Ingredients: tt.ingredients})
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.Difficulty, "%d ingredients", len(tt.ingredients))
	}
}

func TestGeneratorRejectsBlankIngredients(t *testing.T) {
	_, err := NewGenerator().Generate(recipe.GenerationRequest{Ingredients: []string{" ", ""}})
	assert.ErrorIs(t, err, recipe.ErrNoIngredients)
}

func TestHumanList(t *testing.T) {
	assert.Equal(t, "", humanList(nil))
	assert.Equal(t, "rice", humanList([]string{"rice"}))
	assert.Equal(t, "rice and egg", humanList([]string{"rice", "egg"}))
	assert.Equal(t, "rice, egg and peas", humanList([]string{"rice", "egg", "peas"}))
}
