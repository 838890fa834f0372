package model

import "time"

// User represents the authenticated operator as reported by backend login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Credentials is an immutable snapshot of the live session attached to outgoing requests.
// Generation identifies the login that produced the snapshot.
type Credentials struct {
	Token      string
	User       User
	Generation uint64
	ExpiresAt  time.Time
}

// Expired reports whether the token carried an expiry that has already passed.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
