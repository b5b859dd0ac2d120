//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("indexes are created", func(t *testing.T) {
		specs, err := db.Quotes.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(specs))
		for _, s := range specs {
			names = append(names, s.Name)
		}
		assert.Contains(t, names, "reference_1")
		assert.Contains(t, names, "user_id_1_created_at_-1")
	})

	t.Run("logs TTL can be replaced", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30))
		require.NoError(t, db.SetLogsTTL(ctx, 60))
	})

	t.Run("creating indexes twice is a no-op", func(t *testing.T) {
		assert.NoError(t, db.createIndexes(ctx))
	})

	t.Run("decimal codec is registered on the client", func(t *testing.T) {
		_, err := db.Database.Collection("codec").InsertOne(ctx, priced{Amount: mustDecimal("19.99")})
		require.NoError(t, err)

		var raw bson.Raw
		require.NoError(t, db.Database.Collection("codec").FindOne(ctx, bson.M{}).Decode(&raw))
		assert.Equal(t, "19.99", raw.Lookup("amount").Decimal128().String())
	})
}
