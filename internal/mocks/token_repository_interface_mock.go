// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

type MockTokenRepositoryInterface struct {
	mock.Mock
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) Find(ctx context.Context, value string, kind model.TokenKind) (*model.Token, error) {
	args := m.Called(ctx, value, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) Exists(ctx context.Context, value string, kind model.TokenKind) (bool, error) {
	args := m.Called(ctx, value, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepositoryInterface) Delete(ctx context.Context, value string) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteByUser(ctx context.Context, userID primitive.ObjectID, kind model.TokenKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}
