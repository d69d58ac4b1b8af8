// Package service implements the application's operations over the
// store: accounts, posts, comments, categories and home highlights.
// Every operation takes the acting user explicitly; the caller holds
// the session.
package service

import (
	"context"
	"strings"
	"time"

	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/store"
)

type AuthService struct {
	store          *store.Store
	invitationCode string
	log            *observability.Logger
}

type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	InvitationCode  string
}

func NewAuthService(st *store.Store, invitationCode string, log *observability.Logger) *AuthService {
	return &AuthService{
		store:          st,
		invitationCode: invitationCode,
		log:            log.Component("auth"),
	}
}

// Register creates a new account. A correct invitation code grants the
// editor role; an empty code registers a visitor; a wrong code is
// rejected.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	if len(in.Password) < 4 {
		return nil, models.NewValidationError("password must be at least 4 characters")
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError("passwords do not match")
	}
	if s.store.UserByUsername(username) != nil {
		return nil, models.NewValidationError("username is already taken")
	}

	role := models.RoleVisitor
	if in.InvitationCode != "" {
		if in.InvitationCode != s.invitationCode {
			return nil, models.NewValidationError("invalid invitation code")
		}
		role = models.RoleEditor
	}

	user := models.User{
		ID:       nextID(userIDs(s.store.Users)),
		Username: username,
		Password: in.Password,
		Role:     role,
	}
	s.store.Users = append(s.store.Users, user)
	if err := s.store.SaveUsers(ctx); err != nil {
		return nil, err
	}
	s.log.Info("user registered", "username", username, "role", string(role))
	return &user, nil
}

// Login checks credentials and returns the matching user. Comparison of
// the password is exact; usernames are matched ignoring case.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user := s.store.UserByUsername(strings.TrimSpace(username))
	if user == nil || user.Password != password {
		return nil, models.NewUnauthorizedError("invalid username or password")
	}
	out := *user
	return &out, nil
}

// nextID issues a millisecond-timestamp id guaranteed not to collide
// with any of the given existing ids.
func nextID(existing map[int64]bool) int64 {
	id := time.Now().UnixMilli()
	for existing[id] {
		id++
	}
	return id
}

func userIDs(users []models.User) map[int64]bool {
	out := make(map[int64]bool, len(users))
	for _, u := range users {
		out[u.ID] = true
	}
	return out
}
