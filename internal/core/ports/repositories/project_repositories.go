package repositories

import (
	"context"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjectsByUserID retrieves all projects a user belongs to.
	ListProjectsByUserID(ctx context.Context, userID string, includeDisabled bool) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectMembershipManager defines operations for managing project memberships
type ProjectMembershipManager interface {
	// AddUserToProject adds a user to a project with a specific role.
	AddUserToProject(ctx context.Context, membership domain.UserProject) error

	// FindUserProjectRole retrieves the role of a user in a project.
	FindUserProjectRole(ctx context.Context, userID, projectID string) (*domain.UserProject, error)

	// ListProjectUsers retrieves all memberships of a project.
	ListProjectUsers(ctx context.Context, projectID string) ([]domain.UserProject, error)

	// UpdateUserProjectRole changes a user's role within a project.
	UpdateUserProjectRole(ctx context.Context, userID, projectID string, role domain.UserProjectRole) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectMembershipManager
}
