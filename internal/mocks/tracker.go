package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockDailyEatsService is a mock implementation of the DailyEatsService interface
type MockDailyEatsService struct {
	mock.Mock
}

func (m *MockDailyEatsService) RecordConsumption(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.DailyEats, error) {
	args := m.Called(ctx, userID, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyEats), args.Error(1)
}

func (m *MockDailyEatsService) Today() string {
	return m.Called().String(0)
}

func (m *MockDailyEatsService) Day(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyEats), args.Error(1)
}

func (m *MockDailyEatsService) History(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyEats, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyEats), args.Error(1)
}

func (m *MockDailyEatsService) RemoveDay(ctx context.Context, userID uuid.UUID, date string) error {
	return m.Called(ctx, userID, date).Error(0)
}

// MockSearchService is a mock implementation of the SearchService interface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Recipes(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.RecipeHit, error) {
	args := m.Called(ctx, userID, query, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeHit), args.Error(1)
}

func (m *MockSearchService) Ingredients(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.IngredientHit, error) {
	args := m.Called(ctx, userID, query, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.IngredientHit), args.Error(1)
}
