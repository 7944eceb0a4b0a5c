// Package gorm provides GORM model definitions for the stub backend
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`

	Ingredients  IngredientList `gorm:"type:text"`
	Instructions StringSlice    `gorm:"type:text"`

	CookingTimeMinutes int         `gorm:"default:0"`
	Servings           int         `gorm:"default:0"`
	Difficulty         string      `gorm:"type:varchar(20);index"`
	CuisineType        *string     `gorm:"type:varchar(50);index"`
	DietaryTags        StringSlice `gorm:"type:text"`
	ImageURL           *string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// InventoryItemModel is one pantry entry. IngredientKey is the lower-cased
// name and is unique per user.
type InventoryItemModel struct {
	ID             uint    `gorm:"primaryKey"`
	UserID         string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_inventory_user_ingredient"`
	IngredientKey  string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_inventory_user_ingredient"`
	IngredientName string  `gorm:"type:varchar(255);not null"`
	Quantity       *string `gorm:"type:varchar(100)"`
	AddedAt        time.Time
	UpdatedAt      time.Time
}

// TableName overrides
func (UserModel) TableName() string          { return "users" }
func (RecipeModel) TableName() string        { return "recipes" }
func (InventoryItemModel) TableName() string { return "inventory_items" }

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	return string(data), err
}

// IngredientRow is the stored form of one recipe ingredient
type IngredientRow struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Unit     *string `json:"unit,omitempty"`
}

// IngredientList custom type for the JSON ingredient column
type IngredientList []IngredientRow

// Scan implements sql.Scanner
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements driver.Valuer
func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	return string(data), err
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
