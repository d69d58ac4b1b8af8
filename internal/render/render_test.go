package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonglow/internal/models"
)

func ptr(v int64) *int64 { return &v }

func TestRenderer_ContentHTML(t *testing.T) {
	t.Parallel()
	r := New()

	t.Run("markdown converts", func(t *testing.T) {
		t.Parallel()
		post := &models.Post{Format: models.FormatMarkdown, Content: "**bold** and a [link](https://example.com)"}
		out, err := r.ContentHTML(post)
		require.NoError(t, err)
		assert.Contains(t, out, "<strong>bold</strong>")
		assert.Contains(t, out, `href="https://example.com"`)
	})

	t.Run("gfm tables work", func(t *testing.T) {
		t.Parallel()
		post := &models.Post{Format: models.FormatMarkdown, Content: "| a | b |\n|---|---|\n| 1 | 2 |"}
		out, err := r.ContentHTML(post)
		require.NoError(t, err)
		assert.Contains(t, out, "<table>")
	})

	t.Run("rich text is sanitized", func(t *testing.T) {
		t.Parallel()
		post := &models.Post{Format: models.FormatHTML, Content: `<p>ok</p><script>alert(1)</script>`}
		out, err := r.ContentHTML(post)
		require.NoError(t, err)
		assert.Contains(t, out, "<p>ok</p>")
		assert.NotContains(t, out, "script")
	})
}

func TestRenderer_PostDetail(t *testing.T) {
	t.Parallel()
	r := New()

	post := &models.Post{
		ID:      1,
		Title:   "Threads",
		Format:  models.FormatMarkdown,
		Content: "body",
		Comments: []models.Comment{
			{ID: 1, Text: "top", Votes: 1, Date: time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)},
			{ID: 2, Text: "*reply*", ParentID: ptr(1), Date: time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)},
			{ID: 3, Text: "deep", ParentID: ptr(2), Date: time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)},
		},
	}

	detail, err := r.PostDetail(post, "Tech")
	require.NoError(t, err)
	assert.Equal(t, "Tech", detail.CategoryName)
	assert.Contains(t, detail.HTML, "body")
	require.Len(t, detail.Comments, 3)

	assert.Equal(t, int64(1), detail.Comments[0].Comment.ID)
	assert.Equal(t, 0, detail.Comments[0].Level)
	assert.True(t, detail.Comments[0].HasReplies)

	assert.Equal(t, 1, detail.Comments[1].Level)
	assert.Contains(t, detail.Comments[1].HTML, "<em>reply</em>")

	assert.Equal(t, 2, detail.Comments[2].Level)
	assert.False(t, detail.Comments[2].HasReplies)
}

func TestRenderer_Excerpt(t *testing.T) {
	t.Parallel()
	r := New()

	t.Run("strips markup and collapses whitespace", func(t *testing.T) {
		t.Parallel()
		got := r.Excerpt("<p>Hello   <b>world</b></p>\n<p>again</p>", 100)
		assert.Equal(t, "Hello world again", got)
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		t.Parallel()
		got := r.Excerpt("<p>abcdefghij</p>", 5)
		assert.Equal(t, "abcde...", got)
	})

	t.Run("short text is untouched", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hi", r.Excerpt("hi", 10))
	})
}
