package service

import (
	"context"
	"strings"
	"time"

	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/store"
)

type PostService struct {
	store *store.Store
	log   *observability.Logger
}

type PublishInput struct {
	Title      string
	Content    string
	Format     models.ContentFormat
	CategoryID int64
	ImageURL   string
	Tags       []string
}

type EditInput struct {
	Title      string
	Content    string
	Format     models.ContentFormat
	CategoryID int64
	ImageURL   string
	Tags       []string
}

func NewPostService(st *store.Store, log *observability.Logger) *PostService {
	return &PostService{store: st, log: log.Component("posts")}
}

// Publish creates a new post authored by the acting user. Only editors
// and admins may publish.
func (s *PostService) Publish(ctx context.Context, actor *models.User, in PublishInput) (*models.Post, error) {
	if !actor.CanPublish() {
		return nil, models.NewUnauthorizedError("only editors can publish posts")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("content is required")
	}
	format := in.Format
	if format == "" {
		format = models.FormatMarkdown
	}
	categoryID := in.CategoryID
	if s.store.CategoryByID(categoryID) == nil {
		categoryID = models.UncategorizedID
	}

	post := models.Post{
		ID:         nextID(postIDs(s.store.Posts)),
		CategoryID: categoryID,
		Author:     *actor,
		Title:      strings.TrimSpace(in.Title),
		Format:     format,
		Content:    in.Content,
		ImageURL:   strings.TrimSpace(in.ImageURL),
		Tags:       cleanTags(in.Tags),
		Date:       time.Now(),
		Comments:   []models.Comment{},
	}
	// Newest first, matching id order.
	s.store.Posts = append([]models.Post{post}, s.store.Posts...)
	if err := s.store.SavePosts(ctx); err != nil {
		return nil, err
	}
	s.log.Info("post published", "post_id", post.ID, "author", actor.Username)
	return &post, nil
}

// Edit updates an existing post's editable fields and stamps
// LastUpdated. Editing a post that does not exist is a no-op.
func (s *PostService) Edit(ctx context.Context, actor *models.User, id int64, in EditInput) error {
	if !actor.CanPublish() {
		return models.NewUnauthorizedError("only editors can edit posts")
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("title is required")
	}
	post := s.store.PostByID(id)
	if post == nil {
		return nil
	}
	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	if in.Format != "" {
		post.Format = in.Format
	}
	if s.store.CategoryByID(in.CategoryID) != nil {
		post.CategoryID = in.CategoryID
	}
	post.ImageURL = strings.TrimSpace(in.ImageURL)
	post.Tags = cleanTags(in.Tags)
	now := time.Now()
	post.LastUpdated = &now
	return s.store.SavePosts(ctx)
}

// Delete removes a post along with its comments. Deleting a post that
// does not exist is a no-op.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if !actor.CanPublish() {
		return models.NewUnauthorizedError("only editors can delete posts")
	}
	kept := s.store.Posts[:0]
	removed := false
	for _, p := range s.store.Posts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.store.Posts = kept
	if !removed {
		return nil
	}
	return s.store.SavePosts(ctx)
}

// ToggleFeature flips a post's featured flag and returns the new state.
// The featured timestamp is set when featuring and cleared when
// unfeaturing, never one without the other.
func (s *PostService) ToggleFeature(ctx context.Context, actor *models.User, id int64) (bool, error) {
	if !actor.CanPublish() {
		return false, models.NewUnauthorizedError("only editors can feature posts")
	}
	post := s.store.PostByID(id)
	if post == nil {
		return false, nil
	}
	setFeatured(post, !post.IsFeatured)
	if err := s.store.SavePosts(ctx); err != nil {
		return false, err
	}
	return post.IsFeatured, nil
}

// RecordView increments a post's view counter. Unknown ids are ignored.
func (s *PostService) RecordView(ctx context.Context, id int64) error {
	post := s.store.PostByID(id)
	if post == nil {
		return nil
	}
	post.Views++
	return s.store.SavePosts(ctx)
}

// Get returns a copy of a post, or nil if it does not exist.
func (s *PostService) Get(id int64) *models.Post {
	post := s.store.PostByID(id)
	if post == nil {
		return nil
	}
	out := *post
	return &out
}

// List returns a copy of all posts in stored order.
func (s *PostService) List() []models.Post {
	return append([]models.Post(nil), s.store.Posts...)
}

func setFeatured(post *models.Post, featured bool) {
	post.IsFeatured = featured
	if featured {
		now := time.Now()
		post.FeaturedDate = &now
	} else {
		post.FeaturedDate = nil
	}
}

func cleanTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

func postIDs(posts []models.Post) map[int64]bool {
	out := make(map[int64]bool, len(posts))
	for _, p := range posts {
		out[p.ID] = true
	}
	return out
}
