package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"moonglow/internal/models"
	"moonglow/internal/observability"
)

// Store holds the live collections and writes them through to a Backend
// as JSON snapshots. The application operates the store from a single
// goroutine; the mutex only serializes snapshot encoding against
// concurrent saves from misuse.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *observability.Logger

	Users        []models.User
	Posts        []models.Post
	Categories   []models.Category
	Votes        []models.Vote
	CommentVotes []models.CommentVote
}

// New creates a store over the given backend without loading anything.
func New(backend Backend, log *observability.Logger) *Store {
	return &Store{backend: backend, log: log.Component("store")}
}

// Load replaces all collections with the backend's snapshots. Keys that
// have never been written load as empty collections.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := loadSnapshot(ctx, s.backend, KeyUsers, &s.Users); err != nil {
		return err
	}
	if err := loadSnapshot(ctx, s.backend, KeyPosts, &s.Posts); err != nil {
		return err
	}
	if err := loadSnapshot(ctx, s.backend, KeyCategories, &s.Categories); err != nil {
		return err
	}
	if err := loadSnapshot(ctx, s.backend, KeyVotes, &s.Votes); err != nil {
		return err
	}
	if err := loadSnapshot(ctx, s.backend, KeyCommentVotes, &s.CommentVotes); err != nil {
		return err
	}
	s.log.Info("store loaded",
		"users", len(s.Users),
		"posts", len(s.Posts),
		"categories", len(s.Categories))
	return nil
}

func loadSnapshot[T any](ctx context.Context, backend Backend, key string, into *[]T) error {
	data, found, err := backend.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		*into = []T{}
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveSnapshot(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("encode snapshot %s: %w", key, err))
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SaveUsers writes the users collection through to the backend.
func (s *Store) SaveUsers(ctx context.Context) error {
	return s.saveSnapshot(ctx, KeyUsers, s.Users)
}

// SavePosts writes the posts collection through to the backend.
func (s *Store) SavePosts(ctx context.Context) error {
	return s.saveSnapshot(ctx, KeyPosts, s.Posts)
}

// SaveCategories writes the categories collection through to the backend.
func (s *Store) SaveCategories(ctx context.Context) error {
	return s.saveSnapshot(ctx, KeyCategories, s.Categories)
}

// SaveVotes writes the post vote ledger through to the backend.
func (s *Store) SaveVotes(ctx context.Context) error {
	return s.saveSnapshot(ctx, KeyVotes, s.Votes)
}

// SaveCommentVotes writes the comment vote ledger through to the backend.
func (s *Store) SaveCommentVotes(ctx context.Context) error {
	return s.saveSnapshot(ctx, KeyCommentVotes, s.CommentVotes)
}

// SaveAll writes every collection through to the backend.
func (s *Store) SaveAll(ctx context.Context) error {
	for _, save := range []func(context.Context) error{
		s.SaveUsers, s.SavePosts, s.SaveCategories, s.SaveVotes, s.SaveCommentVotes,
	} {
		if err := save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether every collection is empty.
func (s *Store) Empty() bool {
	return len(s.Users) == 0 && len(s.Posts) == 0 && len(s.Categories) == 0 &&
		len(s.Votes) == 0 && len(s.CommentVotes) == 0
}

// PostByID returns a pointer into the posts slice, or nil.
func (s *Store) PostByID(id int64) *models.Post {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return &s.Posts[i]
		}
	}
	return nil
}

// CategoryByID returns a pointer into the categories slice, or nil.
func (s *Store) CategoryByID(id int64) *models.Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// UserByUsername looks a user up by name, ignoring case. Returns nil if
// no such user exists.
func (s *Store) UserByUsername(username string) *models.User {
	for i := range s.Users {
		if strings.EqualFold(s.Users[i].Username, username) {
			return &s.Users[i]
		}
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
