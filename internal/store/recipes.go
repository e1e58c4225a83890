package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository persists recipes a user fetched, bookmarked or ate.
type RecipeRepository interface {
	// Upsert inserts the recipe or replaces its content. An existing
	// bookmark flag is never touched by the update path.
	Upsert(ctx context.Context, recipe *models.Recipe) error
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
	Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	Bookmarked(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	SetBookmark(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

var recipeContentColumns = []string{
	"title", "image", "ready_in_minutes", "servings",
	"nutrients", "ingredients", "instructions", "updated_at",
}

type recipeRepository struct {
	db *gorm.DB
}

func (r *recipeRepository) Upsert(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns(recipeContentColumns),
	}).Create(recipe).Error
	if err != nil {
		return fmt.Errorf("upsert recipe %d: %w", recipe.ID, err)
	}
	return nil
}

func (r *recipeRepository) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").Order("id").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Bookmarked(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bookmarked = ?", userID, true).
		Order("title").
		Find(&recipes).Error
	return recipes, err
}

// SetBookmark flips only the flag of an existing recipe.
func (r *recipeRepository) SetBookmark(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) error {
	res := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("bookmarked", bookmarked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
