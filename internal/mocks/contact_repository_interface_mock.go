// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/coating-service/internal/domain/model"
)

type MockContactRepositoryInterface struct {
	mock.Mock
}

func (m *MockContactRepositoryInterface) Create(ctx context.Context, c *model.ContactRequest) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepositoryInterface) List(ctx context.Context, limit, skip int) ([]model.ContactRequest, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactRequest), args.Error(1)
}
