package moonglow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonglow/internal/config"
	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/service"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		StorageBackend: config.BackendMemory,
		InvitationCode: "moonglow2025",
		HighlightLimit: 2,
		SeedOnEmpty:    true,
	}
	app, err := Open(context.Background(), cfg, observability.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestOpen_SeedsAndWires(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	assert.NotEmpty(t, app.Store.Users)
	assert.NotEmpty(t, app.Store.Posts)

	user, err := app.Auth.Login("editor", "4567")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
}

func TestApp_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newTestApp(t)

	editor, err := app.Auth.Login("editor", "4567")
	require.NoError(t, err)
	visitor, err := app.Auth.Login("visitor1", "8910")
	require.NoError(t, err)

	post, err := app.Posts.Publish(ctx, editor, service.PublishInput{
		Title:   "Moonlit gardening",
		Content: "Plant **tomatoes** at night.",
		Tags:    []string{"garden"},
	})
	require.NoError(t, err)

	comment, err := app.Comments.Add(ctx, visitor, post.ID, "sounds risky")
	require.NoError(t, err)
	_, err = app.Comments.Reply(ctx, editor, post.ID, comment.ID, "it works!")
	require.NoError(t, err)

	score, err := app.Votes.CastPostVote(ctx, visitor, post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	var rendered []models.Post
	engine := app.NewListEngine(func(posts []models.Post, term string) {
		rendered = posts
	})
	engine.SetSearch("tag:garden tomatoes")
	out := engine.UpdateView()
	require.Len(t, out, 1)
	assert.Equal(t, post.ID, out[0].ID)
	assert.Len(t, rendered, 1)

	detail, err := app.PostDetail(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Contains(t, detail.HTML, "<strong>tomatoes</strong>")
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, 1, detail.Comments[1].Level)
	assert.Equal(t, 1, app.Posts.Get(post.ID).Views)

	highlights := app.Highlights()
	found := false
	for _, h := range highlights {
		if h.Post.ID == post.ID {
			found = true
			assert.Contains(t, h.Reasons, service.ReasonTopVoted)
		}
	}
	assert.True(t, found, "voted post should reach the home highlights")
}

func TestApp_PostDetail_UnknownID(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	detail, err := app.PostDetail(context.Background(), 424242)
	require.NoError(t, err)
	assert.Nil(t, detail)
}
