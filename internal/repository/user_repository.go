package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// UserRepository stores accounts.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *MongoDB) *UserRepository {
	return &UserRepository{collection: db.Users}
}

// Create inserts a new user. Emails are stored lower-cased; an existing
// email returns ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = normalizeEmail(user.Email)
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, user)
	return wrapWriteErr(err)
}

// FindByEmail returns the user with email, or nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"email": normalizeEmail(email)})
}

// FindByID returns the user without the password hash, or nil.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"password": 0}))
}

// SetRoles replaces the roles granted to a user.
func (r *UserRepository) SetRoles(ctx context.Context, id primitive.ObjectID, roles []string) error {
	_, err := r.collection.UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"roles": roles, "updated_at": time.Now().UTC()}})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
