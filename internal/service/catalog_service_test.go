package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/mocks"
	"github.com/guttosm/coating-service/internal/repository"
	"github.com/guttosm/coating-service/internal/service"
)

func encodeSpec(t *testing.T, spec catalog.Spec) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, catalog.Encode(&buf, spec))
	return buf.String()
}

// pricierSteel returns the default catalog with steel at 60.
func pricierSteel() catalog.Spec {
	spec := catalog.Default().Spec()
	for i := range spec.Materials {
		if spec.Materials[i].ID == "steel" {
			spec.Materials[i].BasePrice = decimal.NewFromInt(60)
		}
	}
	return spec
}

func steelPrice(t *testing.T, snap *service.CatalogSnapshot) string {
	t.Helper()
	m, ok := snap.Catalog.Material("steel")
	require.True(t, ok)
	return m.BasePrice.String()
}

func TestCatalogService_NewUsesSeed(t *testing.T) {
	svc := service.NewCatalogService(nil, nil)

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.Version)
	assert.NotEmpty(t, snap.Checksum)
	assert.Equal(t, "50", steelPrice(t, snap))
	assert.NotNil(t, snap.Estimator)
	assert.NotNil(t, snap.Strict)
}

func TestCatalogService_Load(t *testing.T) {
	t.Run("activates the stored version", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Active", mock.Anything).Return(&model.CatalogVersion{
			Version:  3,
			Document: encodeSpec(t, pricierSteel()),
			Checksum: "abc",
			Active:   true,
		}, nil)

		require.NoError(t, svc.Load(context.Background()))

		snap := svc.Snapshot()
		assert.Equal(t, 3, snap.Version)
		assert.Equal(t, "abc", snap.Checksum)
		assert.Equal(t, "60", steelPrice(t, snap))
		repo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publishes the seed when nothing is stored", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Active", mock.Anything).Return(nil, nil)
		repo.On("Publish", mock.Anything, mock.AnythingOfType("string"), svc.Snapshot().Checksum, "system").
			Return(&model.CatalogVersion{Version: 1, Active: true}, nil)

		require.NoError(t, svc.Load(context.Background()))

		assert.Equal(t, 1, svc.Snapshot().Version)
		repo.AssertExpectations(t)
	})

	t.Run("stored document is invalid", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Active", mock.Anything).Return(&model.CatalogVersion{Version: 2, Document: "materials: [}"}, nil)

		err := svc.Load(context.Background())
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
		assert.Equal(t, 0, svc.Snapshot().Version)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Active", mock.Anything).Return(nil, errors.New("connection refused"))

		assert.ErrorContains(t, svc.Load(context.Background()), "load active catalog")
	})

	t.Run("no repository", func(t *testing.T) {
		svc := service.NewCatalogService(nil, nil)
		assert.ErrorIs(t, svc.Load(context.Background()), service.ErrRepositoryNotConfigured)
	})
}

func TestCatalogService_Refresh(t *testing.T) {
	repo := new(mocks.MockCatalogRepositoryInterface)
	svc := service.NewCatalogService(repo, nil)
	doc := encodeSpec(t, pricierSteel())

	repo.On("Active", mock.Anything).Return(&model.CatalogVersion{Version: 2, Document: doc, Checksum: "v2"}, nil).Once()
	swapped, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, swapped)
	before := svc.Snapshot()

	repo.On("Active", mock.Anything).Return(&model.CatalogVersion{Version: 2, Document: doc, Checksum: "v2"}, nil).Once()
	swapped, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, swapped)
	assert.Same(t, before, svc.Snapshot())
}

func TestCatalogService_Publish(t *testing.T) {
	t.Run("valid catalog becomes active", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Publish", mock.Anything, mock.MatchedBy(func(doc string) bool {
			c, err := catalog.Load(bytes.NewBufferString(doc))
			if err != nil {
				return false
			}
			m, _ := c.Material("steel")
			return m.BasePrice.Equal(decimal.NewFromInt(60))
		}), mock.AnythingOfType("string"), "admin@example.com").
			Return(&model.CatalogVersion{Version: 2, Active: true}, nil)

		v, err := svc.Publish(context.Background(), pricierSteel(), "admin@example.com")

		require.NoError(t, err)
		assert.Equal(t, 2, v.Version)
		assert.Equal(t, 2, svc.Snapshot().Version)
		assert.Equal(t, "60", steelPrice(t, svc.Snapshot()))
		repo.AssertExpectations(t)
	})

	t.Run("invalid catalog is rejected", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		spec := catalog.Default().Spec()
		spec.Materials[0].BasePrice = decimal.NewFromInt(-1)

		_, err := svc.Publish(context.Background(), spec, "admin@example.com")

		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
		assert.Equal(t, 0, svc.Snapshot().Version)
		repo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same document is a no-op", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Publish", mock.Anything, mock.Anything, mock.Anything, "admin@example.com").
			Return(&model.CatalogVersion{Version: 2, Active: true}, nil).Once()
		first, err := svc.Publish(context.Background(), pricierSteel(), "admin@example.com")
		require.NoError(t, err)

		repo.On("FindByVersion", mock.Anything, 2).Return(first, nil)
		again, err := svc.Publish(context.Background(), pricierSteel(), "someone@example.com")

		require.NoError(t, err)
		assert.Same(t, first, again)
		repo.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("concurrent publish conflicts", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		svc := service.NewCatalogService(repo, nil)

		repo.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, repository.ErrDuplicate)

		_, err := svc.Publish(context.Background(), pricierSteel(), "admin@example.com")

		assert.ErrorIs(t, err, service.ErrCatalogConflict)
		assert.Equal(t, "50", steelPrice(t, svc.Snapshot()))
	})
}

func TestCatalogService_Watch(t *testing.T) {
	repo := new(mocks.MockCatalogRepositoryInterface)
	svc := service.NewCatalogService(repo, nil)

	repo.On("Active", mock.Anything).Return(&model.CatalogVersion{
		Version:  5,
		Document: encodeSpec(t, pricierSteel()),
		Checksum: "v5",
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Watch(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return svc.Snapshot().Version == 5
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
