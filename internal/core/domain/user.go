package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// APIToken identifies a user on incoming requests. Only the SHA-256 digest of
// the token is persisted.
type APIToken struct {
	TokenID    string     `json:"tokenID"`
	UserID     string     `json:"userID"`
	Name       string     `json:"name"` // Label chosen by the user ("ci", "laptop", ...)
	TokenHash  string     `json:"-"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	AuditFields
}
