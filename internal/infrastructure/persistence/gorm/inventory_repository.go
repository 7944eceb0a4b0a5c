package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// InventoryRepository implements the inventory repository interface using GORM
type InventoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db, now: time.Now}
}

var _ outbound.InventoryRepository = (*InventoryRepository)(nil)

// Get returns the user's inventory; a user with no items gets an empty one
func (r *InventoryRepository) Get(ctx context.Context, userID string) (*inventory.UserInventory, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	inv := &inventory.UserInventory{
		UserID:    userID,
		Items:     make([]inventory.Item, 0, len(models)),
		UpdatedAt: r.now().UTC(),
	}
	var latest time.Time
	for i := range models {
		inv.Items = append(inv.Items, ModelToItem(&models[i]))
		if models[i].UpdatedAt.After(latest) {
			latest = models[i].UpdatedAt
		}
	}
	if !latest.IsZero() {
		inv.UpdatedAt = latest.UTC()
	}
	return inv, nil
}

// Upsert adds an item, or updates the quantity of an existing one matched
// by case-insensitive name
func (r *InventoryRepository) Upsert(ctx context.Context, userID string, req inventory.AddItemRequest) (*inventory.Item, error) {
	name := strings.TrimSpace(req.IngredientName)
	key := IngredientKey(name)
	now := r.now().UTC()

	var model InventoryItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND ingredient_key = ?", userID, key).First(&model).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model = InventoryItemModel{
				UserID:         userID,
				IngredientKey:  key,
				IngredientName: name,
				Quantity:       req.Quantity,
				AddedAt:        now,
				UpdatedAt:      now,
			}
			return tx.Create(&model).Error
		case err != nil:
			return err
		}

		model.Quantity = req.Quantity
		model.UpdatedAt = now
		return tx.Save(&model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert inventory item: %w", err)
	}

	item := ModelToItem(&model)
	return &item, nil
}

// Remove deletes an item by case-insensitive name
func (r *InventoryRepository) Remove(ctx context.Context, userID, ingredientName string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_key = ?", userID, IngredientKey(ingredientName)).
		Delete(&InventoryItemModel{})
	if result.Error != nil {
		return fmt.Errorf("remove inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}
