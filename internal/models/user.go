// Package models contains data structures for the application's domain models.
package models

// Role controls what a signed-in user may do.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleEditor  Role = "editor"
	RoleAdmin   Role = "admin"
)

// User represents a registered account. Passwords are stored in plain
// text; the application targets a trusted single-user environment and
// performs no real authentication hardening.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// CanPublish reports whether the user may create or manage content.
func (u *User) CanPublish() bool {
	return u != nil && (u.Role == RoleEditor || u.Role == RoleAdmin)
}
