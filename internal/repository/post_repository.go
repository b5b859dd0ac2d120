package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// PostRepository stores blog posts keyed by slug.
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *MongoDB) *PostRepository {
	return &PostRepository{collection: db.Posts}
}

// Upsert creates or replaces the post with p.Slug. CreatedAt is kept from
// the existing document.
func (r *PostRepository) Upsert(ctx context.Context, p *model.Post) (*model.Post, error) {
	now := time.Now().UTC()
	set := bson.M{
		"title":        p.Title,
		"summary":      p.Summary,
		"author":       p.Author,
		"tags":         p.Tags,
		"cover_image":  p.CoverImage,
		"markdown":     p.Markdown,
		"published":    p.Published,
		"published_at": p.PublishedAt,
		"updated_at":   now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}

	var out model.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"slug": p.Slug}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &out, nil
}

// FindBySlug returns the post with slug, or nil.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return findOne[model.Post](ctx, r.collection, bson.M{"slug": slug})
}

// ListPublished returns published posts newest first, without bodies.
func (r *PostRepository) ListPublished(ctx context.Context, limit, skip int) ([]model.Post, error) {
	opts := findOptions(limit, skip, bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"markdown": 0})
	return findAll[model.Post](ctx, r.collection, bson.M{"published": true}, opts)
}

// CountPublished returns the number of published posts.
func (r *PostRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"published": true})
}

// Delete removes the post with slug and reports whether it existed.
func (r *PostRepository) Delete(ctx context.Context, slug string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
