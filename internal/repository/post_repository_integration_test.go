//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/domain/model"
)

func TestPostRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	published := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	created, err := repo.Upsert(ctx, &model.Post{
		Slug: "prep-matters", Title: "Prep matters", Markdown: "# Hi", Published: true, PublishedAt: &published,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Upsert(ctx, &model.Post{Slug: "draft", Title: "Draft", Markdown: "wip"})
	require.NoError(t, err)

	t.Run("upsert keeps created_at", func(t *testing.T) {
		updated, err := repo.Upsert(ctx, &model.Post{
			Slug: "prep-matters", Title: "Prep still matters", Markdown: "# Hi again", Published: true, PublishedAt: &published,
		})
		require.NoError(t, err)
		assert.Equal(t, "Prep still matters", updated.Title)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.Equal(t, created.ID, updated.ID)
	})

	t.Run("list shows only published posts without bodies", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "prep-matters", posts[0].Slug)
		assert.Empty(t, posts[0].Markdown)

		n, err := repo.CountPublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := repo.Delete(ctx, "draft")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(ctx, "draft")
		require.NoError(t, err)
		assert.False(t, ok)

		p, err := repo.FindBySlug(ctx, "draft")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
