// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/coating-service/internal/domain/model"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) Active(ctx context.Context) (*model.CatalogVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogVersion), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) Publish(ctx context.Context, document, checksum, createdBy string) (*model.CatalogVersion, error) {
	args := m.Called(ctx, document, checksum, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogVersion), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) List(ctx context.Context, limit int) ([]model.CatalogVersion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogVersion), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) FindByVersion(ctx context.Context, version int) (*model.CatalogVersion, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogVersion), args.Error(1)
}
