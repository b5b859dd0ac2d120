package model

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission names. Roles grant permissions by name.
const (
	PermQuotesRead   = "quotes:read"
	PermQuotesWrite  = "quotes:write"
	PermQuotesReview = "quotes:review"
	PermCatalogWrite = "catalog:write"
	PermPostsWrite   = "posts:write"
	PermContactRead  = "contact:read"
	PermLogsRead     = "logs:read"
)

// Role names seeded at startup.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a customer or staff account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Roles     []string           `bson:"roles" json:"roles"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user was granted role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Role groups permissions under a name.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Permissions []string           `bson:"permissions" json:"permissions"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Grants reports whether the role includes permission.
func (r *Role) Grants(permission string) bool {
	return slices.Contains(r.Permissions, permission)
}

// TokenKind distinguishes stored refresh tokens from revoked access tokens.
type TokenKind string

const (
	TokenRefresh TokenKind = "refresh"
	TokenRevoked TokenKind = "revoked"
)

// Token is a stored refresh token or a revoked access token.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Value     string             `bson:"value" json:"-"`
	Kind      TokenKind          `bson:"kind" json:"kind"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
