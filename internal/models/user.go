package models

import (
	"time"
)

// User represents a user of the application.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// APIToken represents an API token row for user authentication.
// TokenHash is the SHA-256 digest of the plaintext; the plaintext is never
// stored.
type APIToken struct {
	TokenID    string     `db:"token_id"`
	UserID     string     `db:"user_id"`
	Name       string     `db:"name"`
	TokenHash  string     `db:"token_hash"`
	ExpiresAt  *time.Time `db:"expires_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
	AuditFields
}

// IsExpired checks if the token has expired.
func (t *APIToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}
