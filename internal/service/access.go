package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/repository"
	"github.com/guttosm/coating-service/internal/service/cache"
)

// DefaultRoles are upserted at startup.
func DefaultRoles() []model.Role {
	return []model.Role{
		{
			Name:        model.RoleCustomer,
			Description: "Customer who saves and tracks quotes",
			Permissions: []string{model.PermQuotesRead, model.PermQuotesWrite},
		},
		{
			Name:        model.RoleAdmin,
			Description: "Staff with full access",
			Permissions: []string{
				model.PermQuotesRead,
				model.PermQuotesWrite,
				model.PermQuotesReview,
				model.PermCatalogWrite,
				model.PermPostsWrite,
				model.PermContactRead,
				model.PermLogsRead,
			},
		},
	}
}

// AccessService resolves what a set of roles is allowed to do.
type AccessService interface {
	HasPermission(ctx context.Context, roles []string, permission string) (bool, error)
	SeedRoles(ctx context.Context) error
}

// AccessServiceImpl implements AccessService. Resolved role permissions are
// cached by role name.
type AccessServiceImpl struct {
	roleRepo repository.RoleRepositoryInterface
	cache    cache.Cache[string, []string]
}

// NewAccessService creates an access service. c may be nil to always read
// roles from the repository.
func NewAccessService(roleRepo repository.RoleRepositoryInterface, c cache.Cache[string, []string]) *AccessServiceImpl {
	return &AccessServiceImpl{roleRepo: roleRepo, cache: c}
}

// HasPermission reports whether any of roles grants permission. Unknown
// roles grant nothing.
func (s *AccessServiceImpl) HasPermission(ctx context.Context, roles []string, permission string) (bool, error) {
	if s.roleRepo == nil {
		return false, ErrRepositoryNotConfigured
	}

	var missing []string
	for _, name := range roles {
		perms, ok := s.cached(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if slices.Contains(perms, permission) {
			return true, nil
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	found, err := s.roleRepo.FindByNames(ctx, missing)
	if err != nil {
		return false, fmt.Errorf("find roles: %w", err)
	}
	byName := make(map[string][]string, len(found))
	for _, r := range found {
		byName[r.Name] = r.Permissions
	}

	granted := false
	for _, name := range missing {
		perms := byName[name]
		if s.cache != nil {
			s.cache.Set(name, perms)
		}
		if slices.Contains(perms, permission) {
			granted = true
		}
	}
	return granted, nil
}

// SeedRoles upserts DefaultRoles and drops any cached permissions.
func (s *AccessServiceImpl) SeedRoles(ctx context.Context) error {
	if s.roleRepo == nil {
		return ErrRepositoryNotConfigured
	}
	for _, role := range DefaultRoles() {
		if err := s.roleRepo.Upsert(ctx, &role); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
		if s.cache != nil {
			s.cache.Invalidate(role.Name)
		}
		log.Debug().Str("role", role.Name).Strs("permissions", role.Permissions).Msg("Role seeded")
	}
	return nil
}

func (s *AccessServiceImpl) cached(name string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(name)
}
