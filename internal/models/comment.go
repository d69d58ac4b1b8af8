package models

import "time"

// Comment is a flat comment record stored on its post. Threading is not
// stored; it is reconstructed from the parent pointers on demand.
type Comment struct {
	ID       int64     `json:"commentId"`
	UserID   int64     `json:"userId"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	// Votes is a cached aggregate; the comment vote ledger is authoritative.
	Votes int `json:"votes"`
	// ParentID is nil for top-level comments.
	ParentID *int64 `json:"parentId"`
}

// IsReply reports whether the comment points at a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
