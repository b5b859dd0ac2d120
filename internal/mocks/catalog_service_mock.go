// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/service"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Snapshot() *service.CatalogSnapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.CatalogSnapshot)
}

func (m *MockCatalogService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogService) Refresh(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogService) Publish(ctx context.Context, spec catalog.Spec, createdBy string) (*model.CatalogVersion, error) {
	args := m.Called(ctx, spec, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogVersion), args.Error(1)
}

func (m *MockCatalogService) Versions(ctx context.Context, limit int) ([]model.CatalogVersion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogVersion), args.Error(1)
}

func (m *MockCatalogService) Watch(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}
