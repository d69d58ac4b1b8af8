package models

import (
	"strings"
	"time"
)

// ContentFormat identifies how a post's content body should be rendered.
type ContentFormat string

const (
	FormatMarkdown ContentFormat = "markdown"
	FormatHTML     ContentFormat = "html"
)

// Post represents a published blog post together with its flat comment
// records. IDs are millisecond timestamps taken at creation time, so id
// order doubles as insertion order.
type Post struct {
	ID          int64         `json:"id"`
	CategoryID  int64         `json:"categoryId"`
	Author      User          `json:"author"`
	Title       string        `json:"title"`
	Format      ContentFormat `json:"editorType"`
	Content     string        `json:"content"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Tags        []string      `json:"tags"`
	Date        time.Time     `json:"date"`
	LastUpdated *time.Time    `json:"lastUpdated,omitempty"`
	// Votes is a cached aggregate; the vote ledger is authoritative.
	Votes        int        `json:"votes"`
	Views        int        `json:"views"`
	IsFeatured   bool       `json:"isFeatured"`
	FeaturedDate *time.Time `json:"featuredDate,omitempty"`
	Comments     []Comment  `json:"comments"`
}

// CommentCount returns the number of comments including nested replies.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// HasTag reports whether the post carries the given tag, ignoring case.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
