package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// CatalogRepositoryInterface stores published catalog versions.
type CatalogRepositoryInterface interface {
	Active(ctx context.Context) (*model.CatalogVersion, error)
	Publish(ctx context.Context, document, checksum, createdBy string) (*model.CatalogVersion, error)
	List(ctx context.Context, limit int) ([]model.CatalogVersion, error)
	FindByVersion(ctx context.Context, version int) (*model.CatalogVersion, error)
}

// QuoteRepositoryInterface stores submitted quotes.
type QuoteRepositoryInterface interface {
	Create(ctx context.Context, q *model.QuoteRecord) error
	FindByReference(ctx context.Context, reference string) (*model.QuoteRecord, error)
	List(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, error)
	Count(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateStatus(ctx context.Context, reference string, from, to model.QuoteStatus) (*model.QuoteRecord, error)
}

// PostRepositoryInterface stores blog posts.
type PostRepositoryInterface interface {
	Upsert(ctx context.Context, p *model.Post) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPublished(ctx context.Context, limit, skip int) ([]model.Post, error)
	CountPublished(ctx context.Context) (int64, error)
	Delete(ctx context.Context, slug string) (bool, error)
}

// ContactRepositoryInterface stores contact requests.
type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *model.ContactRequest) error
	List(ctx context.Context, limit, skip int) ([]model.ContactRequest, error)
}

// LogsRepositoryInterface persists log entries.
type LogsRepositoryInterface interface {
	Insert(ctx context.Context, entries ...*model.LogEntry) error
	Find(ctx context.Context, f model.LogFilter) ([]model.LogEntry, error)
	Count(ctx context.Context, f model.LogFilter) (int64, error)
}

// UserRepositoryInterface stores accounts.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	SetRoles(ctx context.Context, id primitive.ObjectID, roles []string) error
}

// RoleRepositoryInterface stores roles.
type RoleRepositoryInterface interface {
	Upsert(ctx context.Context, role *model.Role) error
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindByNames(ctx context.Context, names []string) ([]model.Role, error)
}

// TokenRepositoryInterface stores refresh and revoked tokens.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	Find(ctx context.Context, value string, kind model.TokenKind) (*model.Token, error)
	Exists(ctx context.Context, value string, kind model.TokenKind) (bool, error)
	Delete(ctx context.Context, value string) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID, kind model.TokenKind) error
}

var (
	_ CatalogRepositoryInterface = (*CatalogRepository)(nil)
	_ QuoteRepositoryInterface   = (*QuoteRepository)(nil)
	_ PostRepositoryInterface    = (*PostRepository)(nil)
	_ ContactRepositoryInterface = (*ContactRepository)(nil)
	_ LogsRepositoryInterface    = (*LogsRepository)(nil)
	_ UserRepositoryInterface    = (*UserRepository)(nil)
	_ RoleRepositoryInterface    = (*RoleRepository)(nil)
	_ TokenRepositoryInterface   = (*TokenRepository)(nil)
)
