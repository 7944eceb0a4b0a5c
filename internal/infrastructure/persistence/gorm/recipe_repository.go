package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Create stores a recipe and fills in its ID when empty
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	rec.ID = model.ID.String()
	rec.CreatedAt = model.CreatedAt.UTC()
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, outbound.ErrNotFound
	}

	var model RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return ModelToRecipe(&model), nil
}

// List returns a page of recipes, newest first, and the total count
func (r *RecipeRepository) List(ctx context.Context, limit, offset int) ([]recipe.Recipe, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return toRecipes(models), total, nil
}

// All returns every stored recipe
func (r *RecipeRepository) All(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return toRecipes(models), nil
}

// Count returns the number of stored recipes
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total).Error
	return total, err
}

func toRecipes(models []RecipeModel) []recipe.Recipe {
	recipes := make([]recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, *ModelToRecipe(&models[i]))
	}
	return recipes
}
