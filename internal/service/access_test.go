package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/mocks"
	"github.com/guttosm/coating-service/internal/service"
	"github.com/guttosm/coating-service/internal/service/cache"
)

func newAccessService(t *testing.T, repo *mocks.MockRoleRepositoryInterface) *service.AccessServiceImpl {
	t.Helper()
	c := cache.New[string, []string]("roles", 16, time.Minute)
	t.Cleanup(c.Stop)
	return service.NewAccessService(repo, c)
}

func TestAccessService_HasPermission(t *testing.T) {
	roles := service.DefaultRoles()

	tests := []struct {
		name       string
		roles      []string
		permission string
		want       bool
	}{
		{name: "customer reads quotes", roles: []string{model.RoleCustomer}, permission: model.PermQuotesRead, want: true},
		{name: "customer cannot publish catalog", roles: []string{model.RoleCustomer}, permission: model.PermCatalogWrite},
		{name: "admin reviews quotes", roles: []string{model.RoleAdmin}, permission: model.PermQuotesReview, want: true},
		{name: "any role is enough", roles: []string{model.RoleCustomer, model.RoleAdmin}, permission: model.PermLogsRead, want: true},
		{name: "unknown role", roles: []string{"guest"}, permission: model.PermQuotesRead},
		{name: "no roles", roles: nil, permission: model.PermQuotesRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockRoleRepositoryInterface)
			repo.On("FindByNames", mock.Anything, mock.Anything).Return(roles, nil).Maybe()

			got, err := newAccessService(t, repo).HasPermission(context.Background(), tt.roles, tt.permission)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("cached roles skip the store", func(t *testing.T) {
		repo := new(mocks.MockRoleRepositoryInterface)
		repo.On("FindByNames", mock.Anything, []string{model.RoleCustomer}).Return(roles[:1], nil).Once()
		svc := newAccessService(t, repo)

		for range 3 {
			ok, err := svc.HasPermission(context.Background(), []string{model.RoleCustomer}, model.PermQuotesWrite)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		repo.AssertNumberOfCalls(t, "FindByNames", 1)
	})

	t.Run("unknown roles are cached too", func(t *testing.T) {
		repo := new(mocks.MockRoleRepositoryInterface)
		repo.On("FindByNames", mock.Anything, []string{"guest"}).Return([]model.Role{}, nil).Once()
		svc := newAccessService(t, repo)

		for range 2 {
			ok, err := svc.HasPermission(context.Background(), []string{"guest"}, model.PermQuotesRead)
			require.NoError(t, err)
			assert.False(t, ok)
		}
		repo.AssertNumberOfCalls(t, "FindByNames", 1)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mocks.MockRoleRepositoryInterface)
		repo.On("FindByNames", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := newAccessService(t, repo).HasPermission(context.Background(), []string{model.RoleAdmin}, model.PermLogsRead)
		assert.ErrorContains(t, err, "find roles")
	})
}

func TestAccessService_SeedRoles(t *testing.T) {
	t.Run("upserts defaults and drops cached permissions", func(t *testing.T) {
		repo := new(mocks.MockRoleRepositoryInterface)
		svc := newAccessService(t, repo)

		repo.On("FindByNames", mock.Anything, []string{model.RoleCustomer}).
			Return([]model.Role{{Name: model.RoleCustomer}}, nil).Once()
		ok, err := svc.HasPermission(context.Background(), []string{model.RoleCustomer}, model.PermQuotesRead)
		require.NoError(t, err)
		assert.False(t, ok)

		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Role")).Return(nil).Times(2)
		require.NoError(t, svc.SeedRoles(context.Background()))

		repo.On("FindByNames", mock.Anything, []string{model.RoleCustomer}).
			Return(service.DefaultRoles()[:1], nil).Once()
		ok, err = svc.HasPermission(context.Background(), []string{model.RoleCustomer}, model.PermQuotesRead)
		require.NoError(t, err)
		assert.True(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("upsert error", func(t *testing.T) {
		repo := new(mocks.MockRoleRepositoryInterface)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("boom"))

		err := newAccessService(t, repo).SeedRoles(context.Background())
		assert.ErrorContains(t, err, "seed role customer")
	})
}
