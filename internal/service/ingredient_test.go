package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/mocks"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
	"github.com/pageza/recipe-tracker/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupIngredients(t *testing.T) (*service.IngredientService, *mocks.MockDocumentStore, *models.User) {
	db := testhelpers.SetupTestDB(t)
	docs := new(mocks.MockDocumentStore)
	return service.NewIngredientService(store.New(db), docs, logging.Discard()), docs, testhelpers.CreateTestUser(t, db)
}

// pantrySize decodes the pushed snapshot and reports its length.
func pantrySize(fields map[string]any) int {
	raw, err := json.Marshal(fields[cloud.FieldIngredients])
	if err != nil {
		return -1
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return -1
	}
	return len(items)
}

func TestAddFromSearchFillsUnitAndQuantity(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, cloud.UsersCollection, user.ID.String(), mock.Anything).Return(nil)
	ctx := context.Background()

	egg, err := svc.AddFromSearch(ctx, user.ID, &types.AddIngredientRequest{ID: 1123, Name: "egg", Image: "egg.png"})
	require.NoError(t, err)
	assert.Equal(t, "pcs", egg.Unit)
	assert.Equal(t, float64(service.DefaultPieces), egg.Quantity)
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/egg.png", egg.Image)

	flour, err := svc.AddFromSearch(ctx, user.ID, &types.AddIngredientRequest{ID: 20081, Name: "wheat flour"})
	require.NoError(t, err)
	assert.Equal(t, "g", flour.Unit)
	assert.Equal(t, float64(service.DefaultGrams), flour.Quantity)

	custom, err := svc.AddFromSearch(ctx, user.ID, &types.AddIngredientRequest{ID: 9, Name: "milk", Quantity: 2, Unit: "l"})
	require.NoError(t, err)
	assert.Equal(t, "l", custom.Unit)
	assert.Equal(t, 2.0, custom.Quantity)

	docs.AssertNumberOfCalls(t, "Merge", 3)
	docs.AssertCalled(t, "Merge", mock.Anything, cloud.UsersCollection, user.ID.String(),
		mock.MatchedBy(func(f map[string]any) bool { return pantrySize(f) == 3 }))
}

func TestUpdateQuantity(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, &models.Ingredient{ID: 1, Name: "rice", Quantity: 500, Unit: "g"})
	require.NoError(t, err)

	got, err := svc.UpdateQuantity(ctx, user.ID, 1, 250)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.Quantity)
	assert.Equal(t, "rice", got.Name)

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = svc.UpdateQuantity(ctx, user.ID, 1, bad)
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	}

	_, err = svc.UpdateQuantity(ctx, user.ID, 404, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPantryMutationsSurviveCloudFailure(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("offline"))
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, &models.Ingredient{ID: 1, Name: "rice", Quantity: 1, Unit: "g"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user.ID, 1))

	exists, err := svc.Exists(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID, 1), service.ErrNotFound)
}

func TestClearPushesEmptyPantry(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, &models.Ingredient{ID: 1, Name: "rice", Quantity: 1, Unit: "g"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, user.ID))

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	docs.AssertCalled(t, "Merge", mock.Anything, cloud.UsersCollection, user.ID.String(),
		mock.MatchedBy(func(f map[string]any) bool { return pantrySize(f) == 0 }))
}

func TestSyncFromCloudReplacesPantry(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, &models.Ingredient{ID: 1, Name: "local only", Quantity: 1, Unit: "g"})
	require.NoError(t, err)

	docs.On("Get", mock.Anything, cloud.UsersCollection, user.ID.String()).Return(cloud.Document{
		cloud.FieldIngredients: json.RawMessage(`[{"id":2,"name":"apple","quantity":3,"unit":"pcs"},{"id":3,"name":"sugar","quantity":200,"unit":"g"}]`),
	}, nil).Once()

	list, err := svc.SyncFromCloud(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "apple", list[0].Name)
	assert.Equal(t, 3.0, list[0].Quantity)

	exists, err := svc.Exists(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSyncFromCloudWithoutDocument(t *testing.T) {
	svc, docs, user := setupIngredients(t)
	docs.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	docs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, cloud.ErrNotFound).Once()
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, &models.Ingredient{ID: 1, Name: "rice", Quantity: 1, Unit: "g"})
	require.NoError(t, err)

	list, err := svc.SyncFromCloud(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	docs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
	_, err = svc.SyncFromCloud(ctx, user.ID)
	assert.ErrorContains(t, err, "timeout")
}
