package domain

import "time"

// SessionLifetime is how long a session token stays valid after login.
const SessionLifetime = 7 * 24 * time.Hour

// User is created on the first successful session exchange for an email.
type User struct {
	ID        UserID    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   *string   `json:"picture"`
	CreatedAt Timestamp `json:"created_at"`
}

// Session binds a long-lived bearer token to a user.
type Session struct {
	UserID    UserID
	Token     SessionToken
	ExpiresAt Timestamp
	CreatedAt Timestamp
}

// ExpiredAt reports whether the session expiry is strictly before now.
// Both instants are compared in UTC.
func (s *Session) ExpiredAt(now time.Time) bool {
	return s.ExpiresAt.UTC().Before(now.UTC())
}

// ExternalIdentity is what the external session-data service returns for
// a short-lived session identifier.
type ExternalIdentity struct {
	Email        string
	Name         string
	Picture      *string
	SessionToken SessionToken // optional, minted locally when empty
}
