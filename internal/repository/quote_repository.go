package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// QuoteRepository stores submitted quotes.
type QuoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *MongoDB) *QuoteRepository {
	return &QuoteRepository{collection: db.Quotes}
}

// Create inserts a quote. A reference collision returns ErrDuplicate.
func (r *QuoteRepository) Create(ctx context.Context, q *model.QuoteRecord) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, q)
	return wrapWriteErr(err)
}

// FindByReference returns the quote with reference, or nil.
func (r *QuoteRepository) FindByReference(ctx context.Context, reference string) (*model.QuoteRecord, error) {
	return findOne[model.QuoteRecord](ctx, r.collection, bson.M{"reference": reference})
}

// List returns quotes newest first. A zero userID lists every user's quotes.
func (r *QuoteRepository) List(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, error) {
	filter := bson.M{}
	if !userID.IsZero() {
		filter["user_id"] = userID
	}
	return findAll[model.QuoteRecord](ctx, r.collection, filter,
		findOptions(limit, skip, bson.D{{Key: "created_at", Value: -1}}))
}

// Count returns how many quotes List would page through.
func (r *QuoteRepository) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := bson.M{}
	if !userID.IsZero() {
		filter["user_id"] = userID
	}
	return r.collection.CountDocuments(ctx, filter)
}

// UpdateStatus moves a quote from one status to another. It returns nil
// when no quote with reference is currently in status from.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, reference string, from, to model.QuoteStatus) (*model.QuoteRecord, error) {
	var out model.QuoteRecord
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"reference": reference, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
