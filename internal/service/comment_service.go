package service

import (
	"context"
	"strings"
	"time"

	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/store"
	"moonglow/internal/thread"
)

type CommentService struct {
	store *store.Store
	log   *observability.Logger
}

func NewCommentService(st *store.Store, log *observability.Logger) *CommentService {
	return &CommentService{store: st, log: log.Component("comments")}
}

// Add appends a top-level comment to a post. Anonymous actors are
// rejected; commenting on a post that does not exist is a no-op and
// returns nil.
func (s *CommentService) Add(ctx context.Context, actor *models.User, postID int64, text string) (*models.Comment, error) {
	return s.add(ctx, actor, postID, nil, text)
}

// Reply appends a reply below an existing comment. The parent is not
// required to exist; a dangling parent pointer renders the reply as
// top-level.
func (s *CommentService) Reply(ctx context.Context, actor *models.User, postID, parentID int64, text string) (*models.Comment, error) {
	return s.add(ctx, actor, postID, &parentID, text)
}

func (s *CommentService) add(ctx context.Context, actor *models.User, postID int64, parentID *int64, text string) (*models.Comment, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("sign in to comment")
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("comment text is required")
	}
	post := s.store.PostByID(postID)
	if post == nil {
		s.log.Debug("comment on unknown post ignored", "post_id", postID)
		return nil, nil
	}

	comment := models.Comment{
		ID:       nextID(commentIDs(post.Comments)),
		UserID:   actor.ID,
		Username: actor.Username,
		Text:     strings.TrimSpace(text),
		Date:     time.Now(),
		ParentID: parentID,
	}
	post.Comments = append(post.Comments, comment)
	if err := s.store.SavePosts(ctx); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment together with all its transitive replies in
// one step. Only the comment's author or an editor may delete it.
// Deleting a comment that does not exist is a no-op.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, postID, commentID int64) error {
	if actor == nil {
		return models.NewUnauthorizedError("sign in to delete comments")
	}
	post := s.store.PostByID(postID)
	if post == nil {
		return nil
	}
	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return nil
	}
	if target.UserID != actor.ID && !actor.CanPublish() {
		return models.NewUnauthorizedError("you can only delete your own comments")
	}

	doomed := make(map[int64]bool)
	for _, id := range thread.SubtreeIDs(post.Comments, commentID) {
		doomed[id] = true
	}
	kept := post.Comments[:0]
	for _, c := range post.Comments {
		if !doomed[c.ID] {
			kept = append(kept, c)
		}
	}
	removed := len(post.Comments) - len(kept)
	post.Comments = kept
	if err := s.store.SavePosts(ctx); err != nil {
		return err
	}
	s.log.Info("comment thread deleted", "post_id", postID, "comment_id", commentID, "removed", removed)
	return nil
}

func commentIDs(comments []models.Comment) map[int64]bool {
	out := make(map[int64]bool, len(comments))
	for _, c := range comments {
		out[c.ID] = true
	}
	return out
}
