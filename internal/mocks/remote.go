// Package mocks provides testify mocks for the engine's remote service
// contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hmchef/hmchef/internal/model"
)

// MockAuthAPI is a mock implementation of the remote auth service
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// MockRecipeAPI is a mock implementation of the remote recipe service
type MockRecipeAPI struct {
	mock.Mock
}

func (m *MockRecipeAPI) ListRecipes(ctx context.Context, id *model.Identity) ([]model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeAPI) CreateRecipe(ctx context.Context, id *model.Identity, recipe model.Recipe) (string, error) {
	args := m.Called(ctx, id, recipe)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeAPI) DeleteRecipe(ctx context.Context, id *model.Identity, recipeID string) error {
	args := m.Called(ctx, id, recipeID)
	return args.Error(0)
}

// MockUploadAPI is a mock implementation of the remote upload service
type MockUploadAPI struct {
	mock.Mock
}

func (m *MockUploadAPI) Upload(ctx context.Context, id *model.Identity, localRef string) (string, error) {
	args := m.Called(ctx, id, localRef)
	return args.String(0), args.Error(1)
}
