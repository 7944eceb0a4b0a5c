package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ outbound.UserRepository = (*UserRepository)(nil)

// Create stores an account; the email must not be taken
func (r *UserRepository) Create(ctx context.Context, account *user.Account) error {
	model := AccountToModel(account)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserModel{}).Where("email = ?", model.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return outbound.ErrDuplicate
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		*account = *ModelToAccount(model)
		return nil
	})
}

// FindByEmail finds an account by email, case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.Account, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return ModelToAccount(&model), nil
}

// FindByID finds an account by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, outbound.ErrNotFound
	}

	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return ModelToAccount(&model), nil
}
