package models

// Vote is one user's current vote on a post. A user holds at most one
// entry per post; casting the same value again removes the entry.
type Vote struct {
	UserID int64 `json:"userId"`
	PostID int64 `json:"postId"`
	Value  int   `json:"value"`
}

// CommentVote is one user's current vote on a comment.
type CommentVote struct {
	UserID    int64 `json:"userId"`
	CommentID int64 `json:"commentId"`
	Value     int   `json:"value"`
}
