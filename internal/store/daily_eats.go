package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyEatsRepository persists per-day nutrient totals and the recipes
// linked to each day.
type DailyEatsRepository interface {
	// Get loads the day with its linked recipes.
	Get(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error)
	// GetForUpdate loads the day without its recipes and locks the row
	// until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error)
	Create(ctx context.Context, day *models.DailyEats) error
	// CreateIfMissing inserts day unless a row for its date already exists.
	CreateIfMissing(ctx context.Context, day *models.DailyEats) error
	UpdateNutrients(ctx context.Context, userID uuid.UUID, date string, nutrients []models.Nutrient) error
	// List returns days in [from, to], newest first. Empty bounds are open.
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyEats, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error

	GetLink(ctx context.Context, userID uuid.UUID, date string, recipeID int64) (*models.DailyRecipe, error)
	CreateLink(ctx context.Context, link *models.DailyRecipe) error
	IncrementLink(ctx context.Context, userID uuid.UUID, date string, recipeID int64) error
}

type dailyEatsRepository struct {
	db *gorm.DB
}

func (r *dailyEatsRepository) Get(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error) {
	var day models.DailyEats
	err := r.db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_id") }).
		Preload("Recipes.Recipe").
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if err != nil {
		return nil, translate(err)
	}
	return &day, nil
}

func (r *dailyEatsRepository) GetForUpdate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error) {
	var day models.DailyEats
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if err != nil {
		return nil, translate(err)
	}
	return &day, nil
}

func (r *dailyEatsRepository) CreateIfMissing(ctx context.Context, day *models.DailyEats) error {
	if day.Nutrients == nil {
		day.Nutrients = datatypes.JSONSlice[models.Nutrient]{}
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(day).Error
	if err != nil {
		return fmt.Errorf("create day %s: %w", day.Date, err)
	}
	return nil
}

func (r *dailyEatsRepository) Create(ctx context.Context, day *models.DailyEats) error {
	if day.Nutrients == nil {
		day.Nutrients = datatypes.JSONSlice[models.Nutrient]{}
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(day).Error; err != nil {
		return fmt.Errorf("create day %s: %w", day.Date, err)
	}
	return nil
}

func (r *dailyEatsRepository) UpdateNutrients(ctx context.Context, userID uuid.UUID, date string, nutrients []models.Nutrient) error {
	if nutrients == nil {
		nutrients = []models.Nutrient{}
	}
	res := r.db.WithContext(ctx).Model(&models.DailyEats{}).
		Where("user_id = ? AND date = ?", userID, date).
		Update("nutrients", datatypes.NewJSONSlice(nutrients))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *dailyEatsRepository) List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyEats, error) {
	q := r.db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_id") }).
		Preload("Recipes.Recipe").
		Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var days []models.DailyEats
	err := q.Order("date DESC").Find(&days).Error
	return days, err
}

// Delete removes the day and its linkage rows.
func (r *dailyEatsRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.DailyRecipe{}).Error; err != nil {
		return fmt.Errorf("delete links for %s: %w", date, err)
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.DailyEats{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *dailyEatsRepository) GetLink(ctx context.Context, userID uuid.UUID, date string, recipeID int64) (*models.DailyRecipe, error) {
	var link models.DailyRecipe
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND recipe_id = ?", userID, date, recipeID).
		First(&link).Error
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (r *dailyEatsRepository) CreateLink(ctx context.Context, link *models.DailyRecipe) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return fmt.Errorf("link recipe %d to %s: %w", link.RecipeID, link.Date, err)
	}
	return nil
}

func (r *dailyEatsRepository) IncrementLink(ctx context.Context, userID uuid.UUID, date string, recipeID int64) error {
	res := r.db.WithContext(ctx).Model(&models.DailyRecipe{}).
		Where("user_id = ? AND date = ? AND recipe_id = ?", userID, date, recipeID).
		UpdateColumn("amount", gorm.Expr("amount + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
