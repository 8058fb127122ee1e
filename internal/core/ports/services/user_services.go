package services

import (
	"context"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/dto"
)

// UserSvcFacade defines operations for user management and API tokens.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// UpdateUser updates a user's details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// AuthenticatePassword verifies a user's email and password.
	AuthenticatePassword(ctx context.Context, email string, password string) (*domain.User, error)

	// CreateAPIToken mints a token for a user; the plaintext is returned once.
	CreateAPIToken(ctx context.Context, userID string, name string) (string, *domain.APIToken, error)

	// AuthenticateToken resolves a plaintext bearer token to its user.
	AuthenticateToken(ctx context.Context, plaintext string) (*domain.User, error)
}
