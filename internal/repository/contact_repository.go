package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *MongoDB) *ContactRepository {
	return &ContactRepository{collection: db.Contacts}
}

// Create inserts a contact request. The caller assigns the id.
func (r *ContactRepository) Create(ctx context.Context, c *model.ContactRequest) error {
	_, err := r.collection.InsertOne(ctx, c)
	return wrapWriteErr(err)
}

// List returns contact requests newest first.
func (r *ContactRepository) List(ctx context.Context, limit, skip int) ([]model.ContactRequest, error) {
	return findAll[model.ContactRequest](ctx, r.collection, bson.M{},
		findOptions(limit, skip, bson.D{{Key: "created_at", Value: -1}}))
}
