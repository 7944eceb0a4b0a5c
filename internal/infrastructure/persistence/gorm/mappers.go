package gorm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/user"
)

// AccountToModel converts an account to a GORM model
func AccountToModel(a *user.Account) *UserModel {
	model := &UserModel{
		Email:        strings.ToLower(strings.TrimSpace(a.Email)),
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
	if id, err := uuid.Parse(a.ID); err == nil {
		model.ID = id
	}
	return model
}

// ModelToAccount converts a GORM model to an account
func ModelToAccount(m *UserModel) *user.Account {
	return &user.Account{
		User: user.User{
			ID:        m.ID.String(),
			Name:      m.Name,
			Email:     m.Email,
			CreatedAt: m.CreatedAt,
		},
		PasswordHash: m.PasswordHash,
	}
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	model := &RecipeModel{
		Title:              r.Title,
		Description:        r.Description,
		Instructions:       StringSlice(r.Instructions),
		CookingTimeMinutes: r.CookingTimeMinutes,
		Servings:           r.Servings,
		Difficulty:         string(r.Difficulty),
		CuisineType:        r.CuisineType,
		DietaryTags:        StringSlice(r.DietaryTags),
		ImageURL:           r.ImageURL,
		CreatedAt:          r.CreatedAt,
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		model.ID = id
	}

	model.Ingredients = make(IngredientList, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		model.Ingredients = append(model.Ingredients, IngredientRow{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	return model
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:                 m.ID.String(),
		Title:              m.Title,
		Description:        m.Description,
		Instructions:       append([]string{}, m.Instructions...),
		CookingTimeMinutes: m.CookingTimeMinutes,
		Servings:           m.Servings,
		Difficulty:         recipe.Difficulty(m.Difficulty),
		CuisineType:        m.CuisineType,
		DietaryTags:        append([]string{}, m.DietaryTags...),
		ImageURL:           m.ImageURL,
		CreatedAt:          m.CreatedAt.UTC(),
	}

	r.Ingredients = make([]recipe.Ingredient, 0, len(m.Ingredients))
	for _, row := range m.Ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{
			Name:     row.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
		})
	}

	return r
}

// ModelToItem converts a GORM inventory row to a domain item
func ModelToItem(m *InventoryItemModel) inventory.Item {
	return inventory.Item{
		IngredientName: m.IngredientName,
		Quantity:       m.Quantity,
		AddedAt:        m.AddedAt.UTC(),
	}
}

// IngredientKey normalises an ingredient name for lookups
func IngredientKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
