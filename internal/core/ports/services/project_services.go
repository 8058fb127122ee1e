package services

import (
	"context"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
)

// ProjectAuthorizerSvc checks whether a user may act within a project.
type ProjectAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least requiredRole in the
	// project. Returns apperrors.ErrNotFound if the project is unknown and
	// apperrors.ErrForbidden if the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, projectID string, requiredRole domain.UserProjectRole) error
}

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListUserProjects retrieves all projects a user belongs to.
	ListUserProjects(ctx context.Context, userID string, includeDisabled bool) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject persists a new project; the creator becomes ADMIN.
	CreateProject(ctx context.Context, name, description, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, projectID string, name, description *string, userID string) (*domain.Project, error)

	// DeactivateProject disables a project.
	DeactivateProject(ctx context.Context, projectID string, requestingUserID string) error
}

// ProjectMembershipSvc defines membership management operations.
type ProjectMembershipSvc interface {
	// AddUserToProject adds a user with a role; requires ADMIN.
	AddUserToProject(ctx context.Context, addingUserID, targetUserID, projectID string, role domain.UserProjectRole) error

	// ListProjectUsers retrieves all memberships; requires READ_ONLY.
	ListProjectUsers(ctx context.Context, projectID string, requestingUserID string) ([]domain.UserProject, error)

	// UpdateUserProjectRole changes a member's role; requires ADMIN.
	UpdateUserProjectRole(ctx context.Context, requestingUserID, targetUserID, projectID string, newRole domain.UserProjectRole) error

	// RemoveUserFromProject marks a member as removed; requires ADMIN.
	RemoveUserFromProject(ctx context.Context, requestingUserID, targetUserID, projectID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectAuthorizerSvc
	ProjectReaderSvc
	ProjectWriterSvc
	ProjectMembershipSvc
}
