package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock implementation of cloud.DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (cloud.Document, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cloud.Document), args.Error(1)
}

// MockCatalog is a mock implementation of the food API client
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) SearchRecipes(ctx context.Context, query string, number int) ([]foodapi.RecipeResult, error) {
	args := m.Called(ctx, query, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]foodapi.RecipeResult), args.Error(1)
}

func (m *MockCatalog) SearchIngredients(ctx context.Context, query string, number int) ([]foodapi.IngredientResult, error) {
	args := m.Called(ctx, query, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]foodapi.IngredientResult), args.Error(1)
}

func (m *MockCatalog) RecipeInformation(ctx context.Context, id int64) (*foodapi.RecipeInformation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*foodapi.RecipeInformation), args.Error(1)
}

// MockBroadcaster records realtime broadcasts
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, userID uuid.UUID, messageType string, data any) {
	m.Called(ctx, userID, messageType, data)
}
