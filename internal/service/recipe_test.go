package service_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/mocks"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func recipeInfo(t *testing.T, id int64, title string) *foodapi.RecipeInformation {
	t.Helper()
	var info foodapi.RecipeInformation
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": `+strconv.FormatInt(id, 10)+`, "title": "`+title+`", "readyInMinutes": 10, "servings": 1,
		"nutrition": {"nutrients": [{"name": "Calories", "amount": 250, "unit": "kcal"}]}
	}`), &info))
	return &info
}

func setupRecipes(t *testing.T) (*service.RecipeService, *mocks.MockCatalog, *models.User) {
	db := testhelpers.SetupTestDB(t)
	catalog := new(mocks.MockCatalog)
	return service.NewRecipeService(store.New(db), catalog), catalog, testhelpers.CreateTestUser(t, db)
}

func TestToggleBookmarkInsertsMissingRecipe(t *testing.T) {
	svc, catalog, user := setupRecipes(t)
	catalog.On("RecipeInformation", mock.Anything, int64(5)).Return(recipeInfo(t, 5, "Soup"), nil).Once()
	ctx := context.Background()

	recipe, err := svc.ToggleBookmark(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.True(t, recipe.Bookmarked)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Equal(t, 250.0, recipe.Nutrients[0].Amount)

	recipe, err = svc.ToggleBookmark(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.False(t, recipe.Bookmarked)
	assert.Equal(t, "Soup", recipe.Title, "toggle changes only the flag")
	assert.Len(t, recipe.Nutrients, 1)

	catalog.AssertExpectations(t)
}

func TestSetBookmarkIsIdempotent(t *testing.T) {
	svc, _, user := setupRecipes(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, user.ID, testhelpers.SampleRecipe(user.ID, 3))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		recipe, err := svc.SetBookmark(ctx, user.ID, 3, true)
		require.NoError(t, err)
		assert.True(t, recipe.Bookmarked)
	}

	marked, err := svc.Bookmarked(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, marked, 1)
}

func TestFetchDetailsKeepsBookmark(t *testing.T) {
	svc, catalog, user := setupRecipes(t)
	ctx := context.Background()
	catalog.On("RecipeInformation", mock.Anything, int64(9)).Return(recipeInfo(t, 9, "Stew"), nil)

	_, err := svc.SetBookmark(ctx, user.ID, 9, true)
	require.NoError(t, err)

	recipe, err := svc.FetchDetails(ctx, user.ID, 9)
	require.NoError(t, err)
	assert.True(t, recipe.Bookmarked)
}

func TestResolvePrefersLocalCopy(t *testing.T) {
	svc, catalog, user := setupRecipes(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, user.ID, testhelpers.SampleRecipe(user.ID, 11))
	require.NoError(t, err)

	recipe, err := svc.Resolve(ctx, user.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, "Recipe 11", recipe.Title)
	catalog.AssertNotCalled(t, "RecipeInformation", mock.Anything, mock.Anything)

	catalog.On("RecipeInformation", mock.Anything, int64(12)).Return(nil, &foodapi.APIError{Status: 404, Body: "not found"})
	_, err = svc.Resolve(ctx, user.ID, 12)
	var apiErr *foodapi.APIError
	assert.ErrorAs(t, err, &apiErr)

	exists, err := svc.Exists(ctx, user.ID, 12)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteRecipe(t *testing.T) {
	svc, _, user := setupRecipes(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, user.ID, testhelpers.SampleRecipe(user.ID, 1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID, 1))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, 1), service.ErrNotFound)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
