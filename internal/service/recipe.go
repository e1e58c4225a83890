package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/nutrition"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"gorm.io/datatypes"
)

// RecipeService stores recipes locally and fills gaps from the catalog.
type RecipeService struct {
	store   *store.Store
	catalog Catalog
}

func NewRecipeService(s *store.Store, catalog Catalog) *RecipeService {
	return &RecipeService{store: s, catalog: catalog}
}

// Upsert stores recipe for userID. An existing bookmark flag is kept.
func (s *RecipeService) Upsert(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.UserID = userID
	fillEmptyLists(recipe)
	repo := s.store.Recipes()
	if err := repo.Upsert(ctx, recipe); err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	return s.store.Recipes().Get(ctx, userID, id)
}

// Resolve returns the local copy, fetching and storing it when missing.
func (s *RecipeService) Resolve(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	recipe, err := s.store.Recipes().Get(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return s.FetchDetails(ctx, userID, id)
	}
	return recipe, err
}

func (s *RecipeService) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	return s.store.Recipes().Exists(ctx, userID, id)
}

func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.store.Recipes().Delete(ctx, userID, id)
}

func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return s.store.Recipes().List(ctx, userID)
}

func (s *RecipeService) Bookmarked(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return s.store.Recipes().Bookmarked(ctx, userID)
}

// SetBookmark sets the flag, inserting the recipe from the catalog when it
// is not stored yet. Only the flag changes on an existing recipe.
func (s *RecipeService) SetBookmark(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) (*models.Recipe, error) {
	repo := s.store.Recipes()
	err := repo.SetBookmark(ctx, userID, id, bookmarked)
	if errors.Is(err, store.ErrNotFound) {
		return s.insertFromCatalog(ctx, userID, id, bookmarked)
	}
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

// ToggleBookmark flips the flag. A recipe that is not stored yet is
// inserted bookmarked.
func (s *RecipeService) ToggleBookmark(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	recipe, err := s.store.Recipes().Get(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return s.insertFromCatalog(ctx, userID, id, true)
	}
	if err != nil {
		return nil, err
	}
	return s.SetBookmark(ctx, userID, id, !recipe.Bookmarked)
}

// FetchDetails loads the recipe from the catalog and stores it.
func (s *RecipeService) FetchDetails(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	info, err := s.catalog.RecipeInformation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Upsert(ctx, userID, info.ToRecipe(userID))
}

func (s *RecipeService) insertFromCatalog(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) (*models.Recipe, error) {
	info, err := s.catalog.RecipeInformation(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe := info.ToRecipe(userID)
	recipe.Bookmarked = bookmarked
	return s.Upsert(ctx, userID, recipe)
}

// fillEmptyLists keeps JSON columns from storing null and folds repeated
// nutrient names.
func fillEmptyLists(r *models.Recipe) {
	r.Nutrients = datatypes.NewJSONSlice(nutrition.Normalize(r.Nutrients))
	if r.Ingredients == nil {
		r.Ingredients = datatypes.JSONSlice[models.IngredientUsage]{}
	}
	if r.Instructions == nil {
		r.Instructions = datatypes.JSONSlice[models.InstructionStep]{}
	}
}
