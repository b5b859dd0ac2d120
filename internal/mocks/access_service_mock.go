// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) HasPermission(ctx context.Context, roles []string, permission string) (bool, error) {
	args := m.Called(ctx, roles, permission)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessService) SeedRoles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
