package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/nutrition"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// SearchService queries the catalog and marks hits the user already has.
type SearchService struct {
	store   *store.Store
	catalog Catalog
}

func NewSearchService(s *store.Store, catalog Catalog) *SearchService {
	return &SearchService{store: s, catalog: catalog}
}

func (s *SearchService) Recipes(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.RecipeHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	results, err := s.catalog.SearchRecipes(ctx, query, number)
	if err != nil {
		return nil, err
	}

	bookmarked, err := s.store.Recipes().Bookmarked(ctx, userID)
	if err != nil {
		return nil, err
	}
	marked := make(map[int64]bool, len(bookmarked))
	for _, r := range bookmarked {
		marked[r.ID] = true
	}

	hits := make([]types.RecipeHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, types.RecipeHit{
			ID:         r.ID,
			Title:      r.Title,
			Image:      r.Image,
			Bookmarked: marked[r.ID],
		})
	}
	return hits, nil
}

func (s *SearchService) Ingredients(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.IngredientHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	results, err := s.catalog.SearchIngredients(ctx, query, number)
	if err != nil {
		return nil, err
	}

	repo := s.store.Ingredients()
	hits := make([]types.IngredientHit, 0, len(results))
	for _, r := range results {
		inPantry, err := repo.Exists(ctx, userID, r.ID)
		if err != nil {
			return nil, err
		}
		hits = append(hits, types.IngredientHit{
			ID:       r.ID,
			Name:     r.Name,
			Image:    r.ImageURL(),
			Unit:     nutrition.GuessUnit(r.Name),
			InPantry: inPantry,
		})
	}
	return hits, nil
}
