package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) recipes(args mock.Arguments) ([]models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Upsert(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, recipe))
}

func (m *MockRecipeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id))
}

func (m *MockRecipeService) Resolve(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id))
}

func (m *MockRecipeService) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, userID))
}

func (m *MockRecipeService) Bookmarked(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, userID))
}

func (m *MockRecipeService) SetBookmark(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id, bookmarked))
}

func (m *MockRecipeService) ToggleBookmark(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id))
}

func (m *MockRecipeService) FetchDetails(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id))
}
