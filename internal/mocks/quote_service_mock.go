// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/service"
)

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Estimate(ctx context.Context, req model.QuoteRequest) (model.PriceBreakdown, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.PriceBreakdown), args.Error(1)
}

func (m *MockQuoteService) Submit(ctx context.Context, userID primitive.ObjectID, req model.QuoteRequest) (*model.QuoteRecord, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, reference string, viewer service.Viewer) (*model.QuoteRecord, error) {
	args := m.Called(ctx, reference, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}

func (m *MockQuoteService) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, int64, error) {
	args := m.Called(ctx, userID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.QuoteRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteService) ListAll(ctx context.Context, limit, skip int) ([]model.QuoteRecord, int64, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.QuoteRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteService) UpdateStatus(ctx context.Context, reference string, status model.QuoteStatus) (*model.QuoteRecord, error) {
	args := m.Called(ctx, reference, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}
