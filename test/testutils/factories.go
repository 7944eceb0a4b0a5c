// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/google/uuid"
)

var pantryStaples = []string{
	"rice", "egg", "onion", "garlic", "tomato", "pasta", "chicken", "butter",
	"flour", "milk", "spinach", "carrot", "potato", "cheese", "bell peppers",
}

var units = []string{"cup", "tbsp", "tsp", "g", "ml", "piece"}

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	r recipe.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	cuisine := "Italian"

	return &RecipeBuilder{r: recipe.Recipe{
		ID:          uuid.NewString(),
		Title:       strings.TrimSuffix(faker.Sentence(3), "."),
		Description: faker.Sentence(10),
		Ingredients: []recipe.Ingredient{
			{Name: "pasta", Quantity: "200", Unit: strPtr("g")},
			{Name: "tomato", Quantity: "2"},
		},
		Instructions:       []string{"Boil the pasta", "Make the sauce", "Combine"},
		CookingTimeMinutes: 25,
		Servings:           2,
		Difficulty:         recipe.DifficultyEasy,
		CuisineType:        &cuisine,
		DietaryTags:        []string{"vegetarian"},
		CreatedAt:          time.Now().UTC(),
	}}
}

// WithID sets the recipe ID
func (rb *RecipeBuilder) WithID(id string) *RecipeBuilder {
	rb.r.ID = id
	return rb
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.r.Title = title
	return rb
}

// WithDescription sets the description
func (rb *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	rb.r.Description = description
	return rb
}

// WithIngredients replaces the ingredient list with plain names
func (rb *RecipeBuilder) WithIngredients(names ...string) *RecipeBuilder {
	rb.r.Ingredients = make([]recipe.Ingredient, 0, len(names))
	for _, n := range names {
		rb.r.Ingredients = append(rb.r.Ingredients, recipe.Ingredient{Name: n, Quantity: "1"})
	}
	return rb
}

// WithDifficulty sets the difficulty
func (rb *RecipeBuilder) WithDifficulty(d recipe.Difficulty) *RecipeBuilder {
	rb.r.Difficulty = d
	return rb
}

// WithCuisine sets the cuisine type
func (rb *RecipeBuilder) WithCuisine(cuisine string) *RecipeBuilder {
	rb.r.CuisineType = &cuisine
	return rb
}

// WithTags sets the dietary tags
func (rb *RecipeBuilder) WithTags(tags ...string) *RecipeBuilder {
	rb.r.DietaryTags = tags
	return rb
}

// Build returns the recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return rb.r
}

// CreateRecipe creates a random but well-formed recipe
func (rf *RecipeFactory) CreateRecipe() recipe.Recipe {
	count := rf.faker.Number(2, 6)
	ingredients := make([]recipe.Ingredient, 0, count)
	seen := make(map[string]bool)
	for len(ingredients) < count {
		name := pantryStaples[rf.faker.Number(0, len(pantryStaples)-1)]
		if seen[name] {
			continue
		}
		seen[name] = true
		unit := units[rf.faker.Number(0, len(units)-1)]
		ingredients = append(ingredients, recipe.Ingredient{
			Name:     name,
			Quantity: rf.faker.DigitN(1),
			Unit:     &unit,
		})
	}

	steps := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		steps = append(steps, rf.faker.Sentence(6))
	}

	cuisine := rf.faker.RandomString([]string{"Italian", "Mexican", "Indian", "Japanese", "French"})
	difficulties := []recipe.Difficulty{recipe.DifficultyEasy, recipe.DifficultyMedium, recipe.DifficultyHard}

	return recipe.Recipe{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSuffix(rf.faker.Sentence(3), "."),
		Description:        rf.faker.Sentence(12),
		Ingredients:        ingredients,
		Instructions:       steps,
		CookingTimeMinutes: rf.faker.Number(10, 90),
		Servings:           rf.faker.Number(1, 6),
		Difficulty:         difficulties[rf.faker.Number(0, 2)],
		CuisineType:        &cuisine,
		DietaryTags:        []string{},
		CreatedAt:          rf.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).UTC(),
	}
}

// CreateRecipes creates n random recipes
func (rf *RecipeFactory) CreateRecipes(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rf.CreateRecipe())
	}
	return out
}

// UserFactory provides methods to create test users
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a new user factory with seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateUser creates a random user profile
func (uf *UserFactory) CreateUser() user.User {
	return user.User{
		ID:        uuid.NewString(),
		Name:      uf.faker.Name(),
		Email:     strings.ToLower(uf.faker.Email()),
		CreatedAt: time.Now().UTC(),
	}
}

// CreateCredentials returns a name, email and password suitable for signup
func (uf *UserFactory) CreateCredentials() (name, email, password string) {
	return uf.faker.Name(), strings.ToLower(uf.faker.Email()), uf.faker.Password(true, true, true, false, false, 12)
}

// InventoryFactory provides methods to create test inventories
type InventoryFactory struct {
	faker *gofakeit.Faker
}

// NewInventoryFactory creates a new inventory factory with seeded faker
func NewInventoryFactory(seed int64) *InventoryFactory {
	return &InventoryFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateInventory creates an inventory holding the given ingredients
func (f *InventoryFactory) CreateInventory(userID string, names ...string) inventory.UserInventory {
	now := time.Now().UTC()
	items := make([]inventory.Item, 0, len(names))
	for _, n := range names {
		qty := f.faker.DigitN(1) + " " + units[f.faker.Number(0, len(units)-1)]
		items = append(items, inventory.Item{IngredientName: n, Quantity: &qty, AddedAt: now})
	}
	return inventory.UserInventory{UserID: userID, Items: items, UpdatedAt: now}
}

func strPtr(s string) *string { return &s }
