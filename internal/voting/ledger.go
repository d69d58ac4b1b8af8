// Package voting maintains the per-user vote ledgers for posts and
// comments. The ledgers are authoritative; the score fields cached on
// posts and comments are recomputed from them after every change.
package voting

import (
	"context"

	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/store"
)

// Ledger applies vote toggles and keeps the cached aggregates in sync.
type Ledger struct {
	store *store.Store
	log   *observability.Logger
}

// NewLedger creates a ledger over the store.
func NewLedger(st *store.Store, log *observability.Logger) *Ledger {
	return &Ledger{store: st, log: log.Component("voting")}
}

// CastPostVote applies a vote toggle for a post and returns the new
// aggregate score. Casting the value already held removes the vote;
// casting the opposite value replaces it. Anonymous actors are
// rejected; a vote on a post that does not exist is a no-op.
func (l *Ledger) CastPostVote(ctx context.Context, actor *models.User, postID int64, value int) (int, error) {
	if actor == nil {
		return 0, models.NewUnauthorizedError("sign in to vote")
	}
	if value != 1 && value != -1 {
		return 0, models.NewValidationError("vote value must be 1 or -1")
	}
	post := l.store.PostByID(postID)
	if post == nil {
		l.log.Debug("vote on unknown post ignored", "post_id", postID)
		return 0, nil
	}

	l.store.Votes = toggle(l.store.Votes, actor.ID, postID, value,
		func(v models.Vote) (int64, int64, int) { return v.UserID, v.PostID, v.Value },
		models.Vote{UserID: actor.ID, PostID: postID, Value: value})

	post.Votes = l.PostScore(postID)
	if err := l.store.SaveVotes(ctx); err != nil {
		return 0, err
	}
	if err := l.store.SavePosts(ctx); err != nil {
		return 0, err
	}
	return post.Votes, nil
}

// CastCommentVote applies a vote toggle for a comment and returns the
// new aggregate score. The comment is located across all posts; a vote
// on a comment that does not exist is a no-op.
func (l *Ledger) CastCommentVote(ctx context.Context, actor *models.User, commentID int64, value int) (int, error) {
	if actor == nil {
		return 0, models.NewUnauthorizedError("sign in to vote")
	}
	if value != 1 && value != -1 {
		return 0, models.NewValidationError("vote value must be 1 or -1")
	}
	comment := l.findComment(commentID)
	if comment == nil {
		l.log.Debug("vote on unknown comment ignored", "comment_id", commentID)
		return 0, nil
	}

	l.store.CommentVotes = toggle(l.store.CommentVotes, actor.ID, commentID, value,
		func(v models.CommentVote) (int64, int64, int) { return v.UserID, v.CommentID, v.Value },
		models.CommentVote{UserID: actor.ID, CommentID: commentID, Value: value})

	comment.Votes = l.CommentScore(commentID)
	if err := l.store.SaveCommentVotes(ctx); err != nil {
		return 0, err
	}
	if err := l.store.SavePosts(ctx); err != nil {
		return 0, err
	}
	return comment.Votes, nil
}

// toggle applies the three-way vote rule to a ledger slice: same value
// removes the entry, a different value replaces it, no entry appends.
func toggle[T any](ledger []T, userID, targetID int64, value int, key func(T) (int64, int64, int), entry T) []T {
	for i := range ledger {
		uid, tid, held := key(ledger[i])
		if uid != userID || tid != targetID {
			continue
		}
		if held == value {
			return append(ledger[:i], ledger[i+1:]...)
		}
		ledger[i] = entry
		return ledger
	}
	return append(ledger, entry)
}

// PostScore sums the ledger entries for a post.
func (l *Ledger) PostScore(postID int64) int {
	total := 0
	for _, v := range l.store.Votes {
		if v.PostID == postID {
			total += v.Value
		}
	}
	return total
}

// CommentScore sums the ledger entries for a comment.
func (l *Ledger) CommentScore(commentID int64) int {
	total := 0
	for _, v := range l.store.CommentVotes {
		if v.CommentID == commentID {
			total += v.Value
		}
	}
	return total
}

// UserPostVote returns the value a user currently holds on a post, or 0.
func (l *Ledger) UserPostVote(userID, postID int64) int {
	for _, v := range l.store.Votes {
		if v.UserID == userID && v.PostID == postID {
			return v.Value
		}
	}
	return 0
}

// UserCommentVote returns the value a user currently holds on a
// comment, or 0.
func (l *Ledger) UserCommentVote(userID, commentID int64) int {
	for _, v := range l.store.CommentVotes {
		if v.UserID == userID && v.CommentID == commentID {
			return v.Value
		}
	}
	return 0
}

func (l *Ledger) findComment(commentID int64) *models.Comment {
	for i := range l.store.Posts {
		for j := range l.store.Posts[i].Comments {
			if l.store.Posts[i].Comments[j].ID == commentID {
				return &l.store.Posts[i].Comments[j]
			}
		}
	}
	return nil
}
