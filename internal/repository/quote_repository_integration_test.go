//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

func newQuote(ref string, user primitive.ObjectID) *model.QuoteRecord {
	return &model.QuoteRecord{
		Reference: ref,
		UserID:    user,
		Request: model.QuoteRequest{
			MaterialID: "steel",
			Coating:    model.CoatingSelection{TypeID: "standard", FinishID: "glossy"},
			Color:      model.ColorSelection{TypeID: "standard"},
			Quantity:   10,
			Dimensions: model.Dimensions{Length: mustDecimal("12.5"), Unit: model.UnitInches},
		},
		Breakdown: model.PriceBreakdown{
			Base:         mustDecimal("500.00"),
			Subtotal:     mustDecimal("500.00"),
			BulkDiscount: mustDecimal("50.00"),
			Total:        mustDecimal("450.00"),
			AppliedDiscounts: []model.AppliedDiscount{
				{Name: "Bulk discount (10%)", Amount: mustDecimal("50.00")},
			},
		},
		Status:         model.QuoteStatusSubmitted,
		CatalogVersion: 1,
	}
}

func TestQuoteRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewQuoteRepository(db)
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, repo.Create(ctx, newQuote("QT-A-001", alice)))
	require.NoError(t, repo.Create(ctx, newQuote("QT-A-002", alice)))
	require.NoError(t, repo.Create(ctx, newQuote("QT-B-001", bob)))

	t.Run("round trips money exactly", func(t *testing.T) {
		got, err := repo.FindByReference(ctx, "QT-A-001")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Breakdown.Total.Equal(mustDecimal("450")))
		assert.True(t, got.Request.Dimensions.Length.Equal(mustDecimal("12.5")))
		assert.Equal(t, "Bulk discount (10%)", got.Breakdown.AppliedDiscounts[0].Name)
	})

	t.Run("unknown reference is nil", func(t *testing.T) {
		got, err := repo.FindByReference(ctx, "QT-NOPE-000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		err := repo.Create(ctx, newQuote("QT-A-001", bob))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("list by user and all", func(t *testing.T) {
		mine, err := repo.List(ctx, alice, 10, 0)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		n, err := repo.Count(ctx, primitive.NilObjectID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("status moves only from the expected state", func(t *testing.T) {
		got, err := repo.UpdateStatus(ctx, "QT-B-001", model.QuoteStatusSubmitted, model.QuoteStatusAccepted)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.QuoteStatusAccepted, got.Status)

		again, err := repo.UpdateStatus(ctx, "QT-B-001", model.QuoteStatusSubmitted, model.QuoteStatusRejected)
		require.NoError(t, err)
		assert.Nil(t, again)
	})
}
