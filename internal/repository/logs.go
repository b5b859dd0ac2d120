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

// LogsRepository persists request and audit log entries.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Insert stores entries in one unordered bulk write.
func (r *LogsRepository) Insert(ctx context.Context, entries ...*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]any, len(entries))
	for i, e := range entries {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now().UTC()
		}
		docs[i] = e
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Find returns entries matching f, newest first.
func (r *LogsRepository) Find(ctx context.Context, f model.LogFilter) ([]model.LogEntry, error) {
	return findAll[model.LogEntry](ctx, r.collection, logFilter(f),
		findOptions(f.Limit, f.Skip, bson.D{{Key: "timestamp", Value: -1}}))
}

// Count returns the number of entries matching f, ignoring paging.
func (r *LogsRepository) Count(ctx context.Context, f model.LogFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(f))
}

func logFilter(f model.LogFilter) bson.M {
	filter := bson.M{}
	if f.RequestID != "" {
		filter["request_id"] = f.RequestID
	}
	if f.Level != "" {
		filter["level"] = f.Level
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.UserID != "" {
		filter["actor.user_id"] = f.UserID
	}
	if f.Since != nil || f.Until != nil {
		window := bson.M{}
		if f.Since != nil {
			window["$gte"] = *f.Since
		}
		if f.Until != nil {
			window["$lte"] = *f.Until
		}
		filter["timestamp"] = window
	}
	return filter
}
