package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// CatalogRepository stores published catalog versions.
type CatalogRepository struct {
	collection *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{collection: db.Catalogs}
}

// Active returns the active catalog version, or nil when none was published.
func (r *CatalogRepository) Active(ctx context.Context) (*model.CatalogVersion, error) {
	return findOne[model.CatalogVersion](ctx, r.collection, bson.M{"active": true},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}))
}

// Publish stores document as the next version and makes it the only active
// one. The unique index on version rejects a concurrent publish of the same
// number with ErrDuplicate.
func (r *CatalogRepository) Publish(ctx context.Context, document, checksum, createdBy string) (*model.CatalogVersion, error) {
	latest, err := findOne[model.CatalogVersion](ctx, r.collection, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"version": 1}))
	if err != nil {
		return nil, fmt.Errorf("find latest version: %w", err)
	}
	next := 1
	if latest != nil {
		next = latest.Version + 1
	}

	now := time.Now().UTC()
	v := &model.CatalogVersion{
		ID:        primitive.NewObjectID(),
		Version:   next,
		Document:  document,
		Active:    false,
		Checksum:  checksum,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, v); err != nil {
		return nil, wrapWriteErr(err)
	}

	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": v.ID}},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	); err != nil {
		return nil, fmt.Errorf("deactivate previous versions: %w", err)
	}
	if _, err := r.collection.UpdateByID(ctx, v.ID, bson.M{"$set": bson.M{"active": true}}); err != nil {
		return nil, fmt.Errorf("activate version %d: %w", next, err)
	}
	v.Active = true
	return v, nil
}

// List returns catalog versions, newest first, without their documents.
func (r *CatalogRepository) List(ctx context.Context, limit int) ([]model.CatalogVersion, error) {
	opts := findOptions(limit, 0, bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"document": 0})
	return findAll[model.CatalogVersion](ctx, r.collection, bson.M{}, opts)
}

// FindByVersion returns one version including its document.
func (r *CatalogRepository) FindByVersion(ctx context.Context, version int) (*model.CatalogVersion, error) {
	return findOne[model.CatalogVersion](ctx, r.collection, bson.M{"version": version})
}
