package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// TokenRepository stores refresh tokens and revoked access tokens. The
// expires_at TTL index removes both once they can no longer be used.
type TokenRepository struct {
	collection *mongo.Collection
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *MongoDB) *TokenRepository {
	return &TokenRepository{collection: db.Tokens}
}

// Create inserts a token.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	token.CreatedAt = time.Now().UTC()
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, token)
	return wrapWriteErr(err)
}

// Find returns the token with value and kind, or nil.
func (r *TokenRepository) Find(ctx context.Context, value string, kind model.TokenKind) (*model.Token, error) {
	return findOne[model.Token](ctx, r.collection, bson.M{"value": value, "kind": kind})
}

// Exists reports whether a token with value and kind is stored.
func (r *TokenRepository) Exists(ctx context.Context, value string, kind model.TokenKind) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"value": value, "kind": kind})
	return n > 0, err
}

// Delete removes the token with value.
func (r *TokenRepository) Delete(ctx context.Context, value string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"value": value})
	return err
}

// DeleteByUser removes every token of kind belonging to userID.
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID, kind model.TokenKind) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID, "kind": kind})
	return err
}
