package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository persists a user's pantry.
type IngredientRepository interface {
	Upsert(ctx context.Context, ingredient *models.Ingredient) error
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Ingredient, error)
	Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, id int64, quantity float64) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	Clear(ctx context.Context, userID uuid.UUID) error
	ReplaceAll(ctx context.Context, userID uuid.UUID, ingredients []models.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func (r *ingredientRepository) Upsert(ctx context.Context, ingredient *models.Ingredient) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "quantity", "unit", "image", "updated_at"}),
	}).Create(ingredient).Error
	if err != nil {
		return fmt.Errorf("upsert ingredient %d: %w", ingredient.ID, err)
	}
	return nil
}

func (r *ingredientRepository) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&ingredient).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ingredientRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").Order("id").
		Find(&ingredients).Error
	return ingredients, err
}

// UpdateQuantity changes only the quantity column.
func (r *ingredientRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, id int64, quantity float64) error {
	res := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Ingredient{}).Error
}

// ReplaceAll swaps the whole pantry for ingredients. Run it inside a
// transaction to make the swap atomic.
func (r *ingredientRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, ingredients []models.Ingredient) error {
	if err := r.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear pantry: %w", err)
	}
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].UserID = userID
	}
	return r.db.WithContext(ctx).CreateInBatches(&ingredients, 100).Error
}
