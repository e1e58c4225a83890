package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

func TestGetRecipeResolves(t *testing.T) {
	a := newTestAPI(t)
	a.recipes.On("Resolve", mock.Anything, a.userID, int64(42)).Return(&models.Recipe{ID: 42, Title: "Soup"}, nil)
	a.recipes.On("Resolve", mock.Anything, a.userID, int64(43)).Return(nil, &foodapi.APIError{Status: 500})

	w := a.do(http.MethodGet, "/api/v1/recipes/42", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Soup", decode[models.Recipe](t, w).Title)

	w = a.do(http.MethodGet, "/api/v1/recipes/43", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = a.do(http.MethodGet, "/api/v1/recipes/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRecipes(t *testing.T) {
	a := newTestAPI(t)
	a.recipes.On("List", mock.Anything, a.userID).Return([]models.Recipe{{ID: 1}, {ID: 2}}, nil)
	a.recipes.On("Bookmarked", mock.Anything, a.userID).Return([]models.Recipe{{ID: 2, Bookmarked: true}}, nil)

	assert.Len(t, decode[[]models.Recipe](t, a.do(http.MethodGet, "/api/v1/recipes", nil)), 2)
	assert.Len(t, decode[[]models.Recipe](t, a.do(http.MethodGet, "/api/v1/recipes?bookmarked=true", nil)), 1)
}

func TestBookmarkRoutes(t *testing.T) {
	a := newTestAPI(t)
	a.recipes.On("ToggleBookmark", mock.Anything, a.userID, int64(5)).Return(&models.Recipe{ID: 5, Bookmarked: true}, nil)
	a.recipes.On("SetBookmark", mock.Anything, a.userID, int64(5), true).Return(&models.Recipe{ID: 5, Bookmarked: true}, nil).Once()
	a.recipes.On("SetBookmark", mock.Anything, a.userID, int64(5), false).Return(&models.Recipe{ID: 5}, nil).Twice()

	assert.True(t, decode[models.Recipe](t, a.do(http.MethodPost, "/api/v1/recipes/5/bookmark", nil)).Bookmarked)
	assert.True(t, decode[models.Recipe](t, a.do(http.MethodPut, "/api/v1/recipes/5/bookmark", nil)).Bookmarked)
	assert.False(t, decode[models.Recipe](t, a.do(http.MethodPut, "/api/v1/recipes/5/bookmark", map[string]bool{"bookmarked": false})).Bookmarked)
	assert.False(t, decode[models.Recipe](t, a.do(http.MethodDelete, "/api/v1/recipes/5/bookmark", nil)).Bookmarked)

	a.recipes.AssertExpectations(t)
}

func TestEatRecipe(t *testing.T) {
	a := newTestAPI(t)
	recipe := &models.Recipe{ID: 9, Title: "Oats"}
	day := &models.DailyEats{Date: "2024-03-10", Nutrients: []models.Nutrient{{Name: "Protein", Amount: 10, Unit: "g"}}}
	a.recipes.On("Resolve", mock.Anything, a.userID, int64(9)).Return(recipe, nil)
	a.recipes.On("Resolve", mock.Anything, a.userID, int64(10)).Return(nil, service.ErrNotFound)
	a.tracker.On("RecordConsumption", mock.Anything, a.userID, recipe).Return(day, nil).Once()

	w := a.do(http.MethodPost, "/api/v1/recipes/9/eat", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[models.DailyEats](t, w)
	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, 10.0, got.Nutrients[0].Amount)

	w = a.do(http.MethodPost, "/api/v1/recipes/10/eat", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	a.tracker.AssertNumberOfCalls(t, "RecordConsumption", 1)
}

func TestSaveAndDeleteRecipe(t *testing.T) {
	a := newTestAPI(t)
	a.recipes.On("Upsert", mock.Anything, a.userID, mock.MatchedBy(func(r *models.Recipe) bool {
		return r.ID == 3 && r.Title == "Mine"
	})).Return(&models.Recipe{ID: 3, Title: "Mine"}, nil)
	a.recipes.On("Delete", mock.Anything, a.userID, int64(3)).Return(nil)
	a.recipes.On("FetchDetails", mock.Anything, a.userID, int64(3)).Return(&models.Recipe{ID: 3, Title: "Fresh"}, nil)
	a.recipes.On("Exists", mock.Anything, a.userID, int64(3)).Return(true, nil)

	w := a.do(http.MethodPut, "/api/v1/recipes/3", map[string]any{"id": 999, "title": "Mine"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodHead, "/api/v1/recipes/3", nil).Code)
	assert.Equal(t, "Fresh", decode[models.Recipe](t, a.do(http.MethodPost, "/api/v1/recipes/3/refresh", nil)).Title)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/v1/recipes/3", nil).Code)
}
