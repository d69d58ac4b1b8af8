package service

import (
	"context"
	"strings"

	"moonglow/internal/models"
)

// BulkActionType names the operations that can be applied to a post
// selection in one step.
type BulkActionType string

const (
	BulkMoveCategory BulkActionType = "move-category"
	BulkAddTags      BulkActionType = "add-tags"
	BulkRemoveTags   BulkActionType = "remove-tags"
	BulkFeature      BulkActionType = "feature"
	BulkUnfeature    BulkActionType = "unfeature"
	BulkDelete       BulkActionType = "delete"
)

// BulkAction describes one bulk operation. CategoryID is used by
// BulkMoveCategory; Tags by the tag actions.
type BulkAction struct {
	Type       BulkActionType
	CategoryID int64
	Tags       []string
}

// BulkApply runs the action against every selected post and returns how
// many posts were actually touched. Ids that do not resolve to a post
// are skipped. The snapshot is written once at the end.
func (s *PostService) BulkApply(ctx context.Context, actor *models.User, ids []int64, action BulkAction) (int, error) {
	if !actor.CanPublish() {
		return 0, models.NewUnauthorizedError("only editors can run bulk actions")
	}

	if action.Type == BulkDelete {
		selected := make(map[int64]bool, len(ids))
		for _, id := range ids {
			selected[id] = true
		}
		kept := s.store.Posts[:0]
		removed := 0
		for _, p := range s.store.Posts {
			if selected[p.ID] {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		s.store.Posts = kept
		if removed == 0 {
			return 0, nil
		}
		return removed, s.store.SavePosts(ctx)
	}

	applied := 0
	for _, id := range ids {
		post := s.store.PostByID(id)
		if post == nil {
			continue
		}
		switch action.Type {
		case BulkMoveCategory:
			if s.store.CategoryByID(action.CategoryID) == nil {
				return 0, models.NewValidationError("unknown category")
			}
			post.CategoryID = action.CategoryID
		case BulkAddTags:
			post.Tags = addTags(post.Tags, action.Tags)
		case BulkRemoveTags:
			post.Tags = removeTags(post.Tags, action.Tags)
		case BulkFeature:
			setFeatured(post, true)
		case BulkUnfeature:
			setFeatured(post, false)
		default:
			return 0, models.NewValidationError("unknown bulk action")
		}
		applied++
	}
	if applied == 0 {
		return 0, nil
	}
	return applied, s.store.SavePosts(ctx)
}

// addTags unions new tags into the existing set, preserving order and
// skipping case-insensitive duplicates.
func addTags(existing, add []string) []string {
	out := append([]string(nil), existing...)
	for _, t := range cleanTags(add) {
		dup := false
		for _, have := range out {
			if strings.EqualFold(have, t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func removeTags(existing, remove []string) []string {
	out := existing[:0:0]
	for _, have := range existing {
		drop := false
		for _, t := range remove {
			if strings.EqualFold(have, strings.TrimSpace(t)) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, have)
		}
	}
	return out
}
