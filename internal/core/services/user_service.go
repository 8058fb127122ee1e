package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// apiTokenBytes is the entropy of a freshly minted token.
const apiTokenBytes = 32

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	tokenExpiry time.Duration
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithTokenExpiry sets the lifetime of minted API tokens. Zero means tokens
// never expire.
func WithTokenExpiry(d time.Duration) UserServiceOption {
	return func(s *userService) {
		s.tokenExpiry = d
	}
}

// NewUserService creates a new user service with the provided options
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo: userRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// hashToken returns the hex-encoded SHA-256 digest of a plaintext token.
// Only the digest is ever persisted.
func hashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID, // Self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("user_id", user.UserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created successfully",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a specific user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser updates a user's details. Users may only update themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated successfully",
		slog.String("user_id", userID))
	return user, nil
}

// DeleteUser soft deletes a user. Users may only delete themselves.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user",
			slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deleted",
		slog.String("user_id", userID))
	return nil
}

// AuthenticatePassword verifies a user's credentials. Failures are reported
// as ErrForbidden without distinguishing unknown email from wrong password.
func (s *userService) AuthenticatePassword(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrForbidden
	}

	return user, nil
}

// CreateAPIToken mints a token for a user. The plaintext is returned exactly
// once; only its digest is stored.
func (s *userService) CreateAPIToken(ctx context.Context, userID string, name string) (string, *domain.APIToken, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return "", nil, err
	}

	raw := make([]byte, apiTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, apperrors.NewAppError(500, "failed to generate token", err)
	}
	plaintext := base64.RawURLEncoding.EncodeToString(raw)

	now := time.Now()
	var expiresAt *time.Time
	if s.tokenExpiry > 0 {
		t := now.Add(s.tokenExpiry)
		expiresAt = &t
	}
	token := domain.APIToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Name:      name,
		TokenHash: hashToken(plaintext),
		ExpiresAt: expiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveAPIToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to save api token",
			slog.String("user_id", userID))
		return "", nil, err
	}

	s.LogInfo(ctx, "API token created",
		slog.String("user_id", userID),
		slog.String("token_id", token.TokenID))
	return plaintext, &token, nil
}

// AuthenticateToken resolves a plaintext bearer token to its user.
func (s *userService) AuthenticateToken(ctx context.Context, plaintext string) (*domain.User, error) {
	if plaintext == "" {
		return nil, apperrors.ErrForbidden
	}

	token, err := s.userRepo.FindAPITokenByHash(ctx, hashToken(plaintext))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: token expired", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	// Best effort bookkeeping; a failed touch must not block authentication.
	if err := s.userRepo.TouchAPIToken(ctx, token.TokenID, time.Now()); err != nil {
		s.LogDebug(ctx, "Failed to record token use",
			slog.String("token_id", token.TokenID))
	}

	return user, nil
}
