package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonglow/internal/models"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func ptr(v int64) *int64 { return &v }

func ids(comments []models.Comment) []int64 {
	out := make([]int64, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func TestLinearize(t *testing.T) {
	t.Parallel()

	t.Run("roots by votes, replies by date", func(t *testing.T) {
		t.Parallel()
		comments := []models.Comment{
			{ID: 1, Votes: 2, Date: at(1)},
			{ID: 2, Votes: 5, Date: at(2)},
			{ID: 3, Votes: 1, Date: at(3)},
			{ID: 11, ParentID: ptr(1), Date: at(5)},
			{ID: 12, ParentID: ptr(1), Date: at(4)},
			{ID: 21, ParentID: ptr(2), Date: at(6)},
		}
		got := Linearize(comments)
		assert.Equal(t, []int64{2, 21, 1, 12, 11, 3}, ids(got))
	})

	t.Run("three comments replying in a chain", func(t *testing.T) {
		t.Parallel()
		comments := []models.Comment{
			{ID: 1, Votes: 0, Date: at(1)},
			{ID: 2, ParentID: ptr(1), Date: at(2)},
			{ID: 3, Votes: 9, Date: at(3)},
		}
		got := Linearize(comments)
		assert.Equal(t, []int64{3, 1, 2}, ids(got))
	})

	t.Run("dangling parent renders as top-level", func(t *testing.T) {
		t.Parallel()
		comments := []models.Comment{
			{ID: 1, Votes: 1, Date: at(1)},
			{ID: 2, ParentID: ptr(999), Votes: 3, Date: at(2)},
		}
		got := Linearize(comments)
		assert.Equal(t, []int64{2, 1}, ids(got))
	})

	t.Run("every comment appears exactly once", func(t *testing.T) {
		t.Parallel()
		comments := []models.Comment{
			{ID: 1, Date: at(1)},
			{ID: 2, ParentID: ptr(1), Date: at(2)},
			{ID: 3, ParentID: ptr(2), Date: at(3)},
			{ID: 4, ParentID: ptr(404), Date: at(4)},
			{ID: 5, Date: at(5)},
		}
		got := Linearize(comments)
		require.Len(t, got, len(comments))
		seen := map[int64]bool{}
		for _, c := range got {
			assert.False(t, seen[c.ID], "comment %d repeated", c.ID)
			seen[c.ID] = true
		}
	})

	t.Run("parent cycles terminate", func(t *testing.T) {
		t.Parallel()
		comments := []models.Comment{
			{ID: 1, ParentID: ptr(2), Date: at(1)},
			{ID: 2, ParentID: ptr(1), Date: at(2)},
		}
		got := Linearize(comments)
		assert.LessOrEqual(t, len(got), 2)
	})
}

func TestLevel(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
		{ID: 4, ParentID: ptr(999)},
	}

	assert.Equal(t, 0, Level(comments, 1))
	assert.Equal(t, 1, Level(comments, 2))
	assert.Equal(t, 2, Level(comments, 3))
	assert.Equal(t, 0, Level(comments, 4), "dangling parent stops the walk")
	assert.Equal(t, 0, Level(comments, 42), "unknown id")

	cyclic := []models.Comment{
		{ID: 1, ParentID: ptr(2)},
		{ID: 2, ParentID: ptr(1)},
	}
	assert.Equal(t, 1, Level(cyclic, 1), "cycle terminates")
}

func TestIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Indent(0))
	assert.Equal(t, MaxIndentLevel, Indent(MaxIndentLevel))
	assert.Equal(t, MaxIndentLevel, Indent(MaxIndentLevel+7))
}

func TestSubtreeIDs(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
		{ID: 4, ParentID: ptr(1)},
		{ID: 5},
	}

	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, SubtreeIDs(comments, 1))
	assert.ElementsMatch(t, []int64{2, 3}, SubtreeIDs(comments, 2))
	assert.Equal(t, []int64{5}, SubtreeIDs(comments, 5))
	assert.Empty(t, SubtreeIDs(comments, 42))

	assert.ElementsMatch(t, []int64{2, 3, 4}, ReplyIDs(comments, 1))
	assert.Empty(t, ReplyIDs(comments, 5))
}

func TestHasReplies(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
	}
	assert.True(t, HasReplies(comments, 1))
	assert.False(t, HasReplies(comments, 2))
}
