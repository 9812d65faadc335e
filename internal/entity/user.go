package entity

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PendingUser is a signup request waiting for admin approval.
type PendingUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RequestedAt  time.Time `json:"requested_at"`
}

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Session is the server-side state behind an opaque bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
