// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

type MockQuoteRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuoteRepositoryInterface) Create(ctx context.Context, q *model.QuoteRecord) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepositoryInterface) FindByReference(ctx context.Context, reference string) (*model.QuoteRecord, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}

func (m *MockQuoteRepositoryInterface) List(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, error) {
	args := m.Called(ctx, userID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuoteRecord), args.Error(1)
}

func (m *MockQuoteRepositoryInterface) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepositoryInterface) UpdateStatus(ctx context.Context, reference string, from, to model.QuoteStatus) (*model.QuoteRecord, error) {
	args := m.Called(ctx, reference, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}
