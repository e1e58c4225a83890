package service_test

import (
	"context"
	"encoding/json"
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

func setupProfile(t *testing.T) (*service.ProfileService, *mocks.MockDocumentStore, *models.User) {
	db := testhelpers.SetupTestDB(t)
	docs := new(mocks.MockDocumentStore)
	return service.NewProfileService(store.New(db), docs, logging.Discard()), docs, testhelpers.CreateTestUser(t, db)
}

func TestUpdateProfileMergesOnlyChangedFields(t *testing.T) {
	svc, docs, user := setupProfile(t)
	docs.On("Merge", mock.Anything, cloud.UsersCollection, user.ID.String(), map[string]any{
		cloud.FieldCalorieGoal: 2200.0,
	}).Return(nil).Once()

	goal := 2200.0
	got, err := svc.Update(context.Background(), user.ID, &types.UpdateProfileRequest{DailyCalorieGoal: &goal})
	require.NoError(t, err)
	assert.Equal(t, 2200.0, got.DailyCalorieGoal)
	assert.Equal(t, user.Name, got.Name)
	docs.AssertExpectations(t)
}

func TestUpdateProfileNothingToChange(t *testing.T) {
	svc, docs, user := setupProfile(t)

	got, err := svc.Update(context.Background(), user.ID, &types.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	docs.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPullFromCloud(t *testing.T) {
	svc, docs, user := setupProfile(t)
	docs.On("Get", mock.Anything, cloud.UsersCollection, user.ID.String()).Return(cloud.Document{
		cloud.FieldName:        json.RawMessage(`"Grace"`),
		cloud.FieldCalorieGoal: json.RawMessage(`1900`),
	}, nil).Once()

	got, err := svc.PullFromCloud(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)
	assert.Equal(t, 1900.0, got.DailyCalorieGoal)

	docs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, cloud.ErrNotFound).Once()
	_, err = svc.PullFromCloud(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrNoCloudProfile)
}
