package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/nutrition"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// Default quantities for ingredients added without one.
const (
	DefaultPieces = 1
	DefaultGrams  = 100
)

// pantryItem is the cloud form of an ingredient.
type pantryItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image,omitempty"`
}

// IngredientService manages a user's pantry and mirrors it to the cloud
// document after every change.
type IngredientService struct {
	store *store.Store
	cloud cloudMirror
	log   logging.Logger
}

func NewIngredientService(s *store.Store, docs cloud.DocumentStore, log logging.Logger) *IngredientService {
	return &IngredientService{
		store: s,
		cloud: cloudMirror{docs: docs, log: log},
		log:   log,
	}
}

func validQuantity(q float64) bool {
	return q >= 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}

// Add inserts the ingredient or replaces the entry with the same id.
func (s *IngredientService) Add(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if !validQuantity(ingredient.Quantity) {
		return nil, ErrInvalidQuantity
	}
	ingredient.UserID = userID
	if err := s.store.Ingredients().Upsert(ctx, ingredient); err != nil {
		return nil, err
	}
	s.pushPantry(ctx, userID)
	return ingredient, nil
}

// AddFromSearch maps a search result to a pantry entry. The unit is guessed
// from the name and the quantity defaults by unit.
func (s *IngredientService) AddFromSearch(ctx context.Context, userID uuid.UUID, req *types.AddIngredientRequest) (*models.Ingredient, error) {
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = nutrition.GuessUnit(req.Name)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = DefaultGrams
		if unit == nutrition.UnitPieces {
			quantity = DefaultPieces
		}
	}

	return s.Add(ctx, userID, &models.Ingredient{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		Quantity: quantity,
		Unit:     unit,
		Image:    foodapi.IngredientResult{Image: req.Image}.ImageURL(),
	})
}

func (s *IngredientService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Ingredient, error) {
	return s.store.Ingredients().Get(ctx, userID, id)
}

func (s *IngredientService) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	return s.store.Ingredients().Exists(ctx, userID, id)
}

func (s *IngredientService) List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	return s.store.Ingredients().List(ctx, userID)
}

// UpdateQuantity changes only the quantity of an existing entry.
func (s *IngredientService) UpdateQuantity(ctx context.Context, userID uuid.UUID, id int64, quantity float64) (*models.Ingredient, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	repo := s.store.Ingredients()
	if err := repo.UpdateQuantity(ctx, userID, id, quantity); err != nil {
		return nil, err
	}
	s.pushPantry(ctx, userID)
	return repo.Get(ctx, userID, id)
}

func (s *IngredientService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.store.Ingredients().Delete(ctx, userID, id); err != nil {
		return err
	}
	s.pushPantry(ctx, userID)
	return nil
}

func (s *IngredientService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Ingredients().Clear(ctx, userID); err != nil {
		return err
	}
	s.pushPantry(ctx, userID)
	return nil
}

// SyncFromCloud replaces the local pantry with the cloud snapshot. The
// remote copy wins; local edits made since the last push are lost. A
// missing document or field leaves the pantry as it is.
func (s *IngredientService) SyncFromCloud(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	doc, err := s.cloud.fetch(ctx, userID)
	if errors.Is(err, cloud.ErrNotFound) {
		return s.List(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cloud pantry: %w", err)
	}

	var items []pantryItem
	ok, err := doc.Decode(cloud.FieldIngredients, &items)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.List(ctx, userID)
	}

	ingredients := make([]models.Ingredient, 0, len(items))
	for _, it := range items {
		ingredients = append(ingredients, models.Ingredient{
			UserID:   userID,
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Image:    it.Image,
		})
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.Ingredients().ReplaceAll(ctx, userID, ingredients)
	})
	if err != nil {
		return nil, fmt.Errorf("replace pantry: %w", err)
	}
	return s.List(ctx, userID)
}

func (s *IngredientService) pushPantry(ctx context.Context, userID uuid.UUID) {
	if s.cloud.docs == nil {
		return
	}
	ingredients, err := s.store.Ingredients().List(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "list pantry for cloud push", "user_id", userID, "error", err)
		return
	}

	items := make([]pantryItem, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, pantryItem{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Image:    ing.Image,
		})
	}
	s.cloud.push(ctx, userID, map[string]any{cloud.FieldIngredients: items})
}
