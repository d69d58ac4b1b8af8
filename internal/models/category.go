package models

// UncategorizedID is the reserved fallback category. It cannot be
// deleted, and posts whose category no longer exists display under it.
const UncategorizedID int64 = 1

// Category groups posts under a display name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
