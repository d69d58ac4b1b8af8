package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonglow/internal/models"
)

func TestPostService_BulkApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*PostService, []int64) {
		svc, _ := newTestPosts(t)
		a := publish(t, svc, PublishInput{Title: "a", Content: "x", Tags: []string{"keep"}})
		b := publish(t, svc, PublishInput{Title: "b", Content: "x"})
		return svc, []int64{a.ID, b.ID}
	}

	t.Run("visitors are rejected", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		_, err := svc.BulkApply(ctx, visitorUser, ids, BulkAction{Type: BulkFeature})
		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})

	t.Run("move category", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		n, err := svc.BulkApply(ctx, editorUser, ids, BulkAction{Type: BulkMoveCategory, CategoryID: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		for _, id := range ids {
			assert.Equal(t, int64(2), svc.Get(id).CategoryID)
		}
	})

	t.Run("move to unknown category fails", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		_, err := svc.BulkApply(ctx, editorUser, ids, BulkAction{Type: BulkMoveCategory, CategoryID: 77})
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	})

	t.Run("add tags unions without duplicates", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		n, err := svc.BulkApply(ctx, editorUser, ids, BulkAction{Type: BulkAddTags, Tags: []string{"Keep", "new"}})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"keep", "new"}, svc.Get(ids[0]).Tags)
		assert.Equal(t, []string{"Keep", "new"}, svc.Get(ids[1]).Tags)
	})

	t.Run("remove tags", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		_, err := svc.BulkApply(ctx, editorUser, ids, BulkAction{Type: BulkRemoveTags, Tags: []string{"KEEP"}})
		require.NoError(t, err)
		assert.Empty(t, svc.Get(ids[0]).Tags)
	})

	t.Run("feature and unfeature", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		_, err := svc.BulkApply(ctx, editorUser, ids, BulkAction{Type: BulkFeature})
		require.NoError(t, err)
		assert.True(t, svc.Get(ids[0]).IsFeatured)
		assert.NotNil(t, svc.Get(ids[0]).FeaturedDate)
		_, err = svc.BulkApply(ctx, editorUser, ids[:1], BulkAction{Type: BulkUnfeature})
		require.NoError(t, err)
		assert.False(t, svc.Get(ids[0]).IsFeatured)
		assert.True(t, svc.Get(ids[1]).IsFeatured)
	})

	t.Run("delete removes the selection", func(t *testing.T) {
		t.Parallel()
		svc, ids := setup(t)
		n, err := svc.BulkApply(ctx, editorUser, []int64{ids[0], 999}, BulkAction{Type: BulkDelete})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Nil(t, svc.Get(ids[0]))
		assert.NotNil(t, svc.Get(ids[1]))
	})

	t.Run("unknown ids are skipped", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)
		n, err := svc.BulkApply(ctx, editorUser, []int64{555}, BulkAction{Type: BulkFeature})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
