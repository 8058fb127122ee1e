package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// APITokenManager defines operations for API token persistence.
type APITokenManager interface {
	// SaveAPIToken persists a new API token (hash only).
	SaveAPIToken(ctx context.Context, token domain.APIToken) error

	// FindAPITokenByHash retrieves a token record by its SHA-256 digest.
	FindAPITokenByHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	// TouchAPIToken records when the token was last used.
	TouchAPIToken(ctx context.Context, tokenID string, usedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	APITokenManager
}
