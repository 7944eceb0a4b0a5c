package apiserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

var seedPantry = []string{
	"rice", "egg", "onion", "garlic", "tomato", "pasta", "chicken", "butter",
	"flour", "milk", "spinach", "carrot", "potato", "cheese", "bell peppers",
	"lentils", "chickpeas", "tofu", "mushrooms", "lemon", "basil", "ginger",
}

var seedCuisines = []string{"Italian", "Mexican", "Indian", "Chinese", "Thai", "French", "Japanese", "Greek"}

var seedTags = []string{"vegetarian", "vegan", "gluten-free", "dairy-free", "low-carb"}

// Seed fills an empty recipe store with n fake recipes. A store that already
// holds recipes is left untouched. The same seed yields the same catalogue.
func Seed(ctx context.Context, recipes outbound.RecipeRepository, n int, seed int64, logger *zap.Logger) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	count, err := recipes.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	if count > 0 {
		logger.Debug("Recipe store already seeded", zap.Int64("recipes", count))
		return 0, nil
	}

	faker := gofakeit.New(seed)
	for i := 0; i < n; i++ {
		r := fakeRecipe(faker)
		if err := recipes.Create(ctx, &r); err != nil {
			return i, fmt.Errorf("seed recipe %d: %w", i, err)
		}
	}

	logger.Info("Seeded recipe store", zap.Int("recipes", n))
	return n, nil
}

func fakeRecipe(faker *gofakeit.Faker) recipe.Recipe {
	count := faker.Number(2, 6)
	ingredients := make([]recipe.Ingredient, 0, count)
	seen := make(map[string]bool, count)
	for len(ingredients) < count {
		name := faker.RandomString(seedPantry)
		if seen[name] {
			continue
		}
		seen[name] = true
		ing := recipe.Ingredient{Name: name, Quantity: fmt.Sprint(faker.Number(1, 4))}
		if faker.Bool() {
			unit := faker.RandomString([]string{"cup", "tbsp", "tsp", "g"})
			ing.Unit = &unit
		}
		ingredients = append(ingredients, ing)
	}

	steps := faker.Number(3, 6)
	instructions := make([]string, 0, steps)
	for i := 0; i < steps; i++ {
		instructions = append(instructions, faker.Sentence(8))
	}

	cuisine := faker.RandomString(seedCuisines)
	var tags []string
	if faker.Bool() {
		tags = append(tags, faker.RandomString(seedTags))
	}

	return recipe.Recipe{
		Title:              strings.TrimSpace(cuisine + " " + faker.Dinner()),
		Description:        faker.Sentence(12),
		Ingredients:        ingredients,
		Instructions:       instructions,
		CookingTimeMinutes: faker.Number(10, 90),
		Servings:           faker.Number(1, 6),
		Difficulty:         recipe.Difficulty(faker.RandomString([]string{"easy", "medium", "hard"})),
		CuisineType:        &cuisine,
		DietaryTags:        tags,
	}
}
