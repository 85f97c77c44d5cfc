package entity

import (
	"time"
)

// Role represents an authorization role. Every user carries exactly one.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field; the refresh token
// is persisted only as a SHA-256 hash. Neither is ever serialized.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Password           string     `json:"-"`
	Name               *string    `json:"name"`
	Role               Role       `json:"role"`
	ProfilePhoto       *string    `json:"profilePhoto"`
	HashedRefreshToken *string    `json:"-"`
	RefreshExpiresAt   *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuditLog is an authentication event.
type AuditLog struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
