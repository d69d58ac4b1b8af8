package seed

import (
	"context"
	"time"

	"moonglow/internal/models"
	"moonglow/internal/store"
)

func ptr(v int64) *int64 { return &v }

// IfEmpty installs the default demo dataset when every collection in
// the store is empty, then writes all snapshots through. A store with
// any existing data is left untouched.
func IfEmpty(ctx context.Context, st *store.Store) (bool, error) {
	if !st.Empty() {
		return false, nil
	}

	st.Users = DefaultUsers()
	st.Categories = DefaultCategories()
	st.Posts = DefaultPosts()
	st.Votes = []models.Vote{}
	st.CommentVotes = []models.CommentVote{}

	if err := st.SaveAll(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultUsers returns the three built-in accounts.
func DefaultUsers() []models.User {
	return []models.User{
		{ID: 0, Username: "admin", Password: "1234", Role: models.RoleAdmin},
		{ID: 1, Username: "editor", Password: "4567", Role: models.RoleEditor},
		{ID: 2, Username: "visitor1", Password: "8910", Role: models.RoleVisitor},
	}
}

// DefaultCategories returns the built-in categories, including the
// reserved fallback.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: models.UncategorizedID, Name: "Uncategorized"},
		{ID: 2, Name: "Tech"},
		{ID: 3, Name: "Life"},
	}
}

// DefaultPosts returns two starter posts, the second featured and
// carrying a small comment thread.
func DefaultPosts() []models.Post {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	featured := base.Add(48 * time.Hour)
	users := DefaultUsers()

	welcome := models.Post{
		ID:         base.UnixMilli(),
		CategoryID: 2,
		Author:     users[1],
		Title:      "Welcome to Moonglow",
		Format:     models.FormatMarkdown,
		Content: "This site runs on a tiny blog engine.\n\n" +
			"Posts support **markdown**, tags, categories and nested comments. " +
			"Try the search box: `tag:meta` or `votes:>=1` mixes with free text.",
		Tags:     []string{"meta", "welcome"},
		Date:     base,
		Views:    3,
		Comments: []models.Comment{},
	}

	tour := models.Post{
		ID:         base.Add(24 * time.Hour).UnixMilli(),
		CategoryID: 3,
		Author:     users[0],
		Title:      "A quick tour of the comment threads",
		Format:     models.FormatMarkdown,
		Content: "Comments nest. Replies sort by date under their parent, " +
			"while top-level comments rank by votes.",
		Tags:         []string{"meta"},
		Date:         base.Add(24 * time.Hour),
		Views:        7,
		IsFeatured:   true,
		FeaturedDate: &featured,
		Comments: []models.Comment{
			{
				ID:       base.Add(25 * time.Hour).UnixMilli(),
				UserID:   users[2].ID,
				Username: users[2].Username,
				Text:     "First! Looking forward to more posts.",
				Date:     base.Add(25 * time.Hour),
			},
			{
				ID:       base.Add(26 * time.Hour).UnixMilli(),
				UserID:   users[1].ID,
				Username: users[1].Username,
				Text:     "Replies indent below their parent.",
				Date:     base.Add(26 * time.Hour),
				ParentID: ptr(base.Add(25 * time.Hour).UnixMilli()),
			},
		},
	}

	// Stored newest first.
	return []models.Post{tour, welcome}
}
