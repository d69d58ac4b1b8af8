package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonglow/internal/models"
	"moonglow/internal/observability"
)

func testPost() models.Post {
	parent := int64(7)
	return models.Post{
		ID:         1717243200000,
		CategoryID: 2,
		Author:     models.User{ID: 1, Username: "editor", Role: models.RoleEditor},
		Title:      "Round trip",
		Format:     models.FormatMarkdown,
		Content:    "body",
		Tags:       []string{"a", "b"},
		Date:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Votes:      3,
		Views:      9,
		Comments: []models.Comment{
			{ID: 7, UserID: 1, Username: "editor", Text: "top", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
			{ID: 8, UserID: 2, Username: "visitor1", Text: "reply", ParentID: &parent},
		},
	}
}

func roundTrip(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	log := observability.NewNopLogger()

	st := New(backend, log)
	require.NoError(t, st.Load(ctx))
	assert.True(t, st.Empty())
	assert.NotNil(t, st.Posts, "missing snapshots load as empty collections")

	st.Posts = []models.Post{testPost()}
	st.Users = []models.User{{ID: 1, Username: "editor", Role: models.RoleEditor}}
	st.Categories = []models.Category{{ID: 2, Name: "Tech"}}
	st.Votes = []models.Vote{{UserID: 1, PostID: testPost().ID, Value: 1}}
	st.CommentVotes = []models.CommentVote{{UserID: 1, CommentID: 7, Value: -1}}
	require.NoError(t, st.SaveAll(ctx))

	reloaded := New(backend, log)
	require.NoError(t, reloaded.Load(ctx))
	require.Len(t, reloaded.Posts, 1)
	got := reloaded.Posts[0]
	want := testPost()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Tags, got.Tags)
	require.Len(t, got.Comments, 2)
	require.NotNil(t, got.Comments[1].ParentID)
	assert.Equal(t, int64(7), *got.Comments[1].ParentID)
	assert.Nil(t, got.Comments[0].ParentID)
	assert.True(t, want.Date.Equal(got.Date))
	assert.Equal(t, st.Votes, reloaded.Votes)
	assert.Equal(t, st.CommentVotes, reloaded.CommentVotes)
	assert.False(t, reloaded.Empty())
}

func TestStore_MemoryBackend(t *testing.T) {
	t.Parallel()
	roundTrip(t, NewMemoryBackend())
}

func TestStore_FileBackend(t *testing.T) {
	t.Parallel()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	roundTrip(t, backend)
}

func TestStore_RedisBackend(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	backend, err := NewRedisBackend(context.Background(), srv.Addr())
	require.NoError(t, err)
	defer backend.Close()
	roundTrip(t, backend)
}

func TestStore_SQLiteBackend(t *testing.T) {
	t.Parallel()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	defer backend.Close()
	roundTrip(t, backend)
}

func TestStore_Lookups(t *testing.T) {
	t.Parallel()
	st := New(NewMemoryBackend(), observability.NewNopLogger())
	st.Posts = []models.Post{testPost()}
	st.Users = []models.User{{ID: 1, Username: "Editor"}}
	st.Categories = []models.Category{{ID: 2, Name: "Tech"}}

	assert.NotNil(t, st.PostByID(testPost().ID))
	assert.Nil(t, st.PostByID(42))
	assert.NotNil(t, st.CategoryByID(2))
	assert.Nil(t, st.CategoryByID(3))
	assert.NotNil(t, st.UserByUsername("editor"), "username lookup ignores case")
	assert.Nil(t, st.UserByUsername("nobody"))
}

func TestFileBackend_UnwrittenKey(t *testing.T) {
	t.Parallel()
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	_, found, err := backend.Get(context.Background(), KeyPosts)
	require.NoError(t, err)
	assert.False(t, found)
}
