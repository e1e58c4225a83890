package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockIngredientService is a mock implementation of the IngredientService interface
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) ingredient(args mock.Arguments) (*models.Ingredient, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) ingredients(args mock.Arguments) ([]models.Ingredient, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) Add(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error) {
	return m.ingredient(m.Called(ctx, userID, ingredient))
}

func (m *MockIngredientService) AddFromSearch(ctx context.Context, userID uuid.UUID, req *types.AddIngredientRequest) (*models.Ingredient, error) {
	return m.ingredient(m.Called(ctx, userID, req))
}

func (m *MockIngredientService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Ingredient, error) {
	return m.ingredient(m.Called(ctx, userID, id))
}

func (m *MockIngredientService) Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockIngredientService) List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	return m.ingredients(m.Called(ctx, userID))
}

func (m *MockIngredientService) UpdateQuantity(ctx context.Context, userID uuid.UUID, id int64, quantity float64) (*models.Ingredient, error) {
	return m.ingredient(m.Called(ctx, userID, id, quantity))
}

func (m *MockIngredientService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockIngredientService) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockIngredientService) SyncFromCloud(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	return m.ingredients(m.Called(ctx, userID))
}
