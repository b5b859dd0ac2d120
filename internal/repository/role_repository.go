package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// RoleRepository stores named roles and the permissions they grant.
type RoleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *MongoDB) *RoleRepository {
	return &RoleRepository{collection: db.Roles}
}

// Upsert creates the role or replaces its description and permissions.
func (r *RoleRepository) Upsert(ctx context.Context, role *model.Role) error {
	now := time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"name": role.Name},
		bson.M{
			"$set": bson.M{
				"description": role.Description,
				"permissions": role.Permissions,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// FindByName returns the role called name, or nil.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return findOne[model.Role](ctx, r.collection, bson.M{"name": name})
}

// FindByNames returns the roles whose names are in names. Unknown names are
// skipped.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	if len(names) == 0 {
		return []model.Role{}, nil
	}
	return findAll[model.Role](ctx, r.collection, bson.M{"name": bson.M{"$in": names}},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}
