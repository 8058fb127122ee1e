package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new project service with the provided dependencies
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo: projectRepo,
	}
}

// Ensure projectService implements the ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// AuthorizeUserAction checks if a user has required permissions for a project
func (s *projectService) AuthorizeUserAction(ctx context.Context, userID, projectID string, requiredRole domain.UserProjectRole) error {
	if projectID == "" {
		return apperrors.ErrTenantScopeRequired
	}

	membership, err := s.projectRepo.FindUserProjectRole(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of project",
				slog.String("user_id", userID),
				slog.String("project_id", projectID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user project role",
			slog.String("user_id", userID),
			slog.String("project_id", projectID))
		return err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("project_id", projectID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// FindProjectByID retrieves a project by its ID
func (s *projectService) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project by ID",
				slog.String("project_id", projectID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Project retrieved successfully",
		slog.String("project_id", project.ProjectID))
	return project, nil
}

// ListUserProjects retrieves all projects a user belongs to
func (s *projectService) ListUserProjects(ctx context.Context, userID string, includeDisabled bool) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjectsByUserID(ctx, userID, includeDisabled)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if projects == nil {
		return []domain.Project{}, nil
	}

	s.LogDebug(ctx, "Projects listed successfully",
		slog.Int("count", len(projects)),
		slog.String("user_id", userID))
	return projects, nil
}

// CreateProject creates a new project and makes the creator its admin
func (s *projectService) CreateProject(ctx context.Context, name, description, creatorUserID string) (*domain.Project, error) {
	now := time.Now()
	projectID := uuid.NewString()

	project := domain.Project{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := s.projectRepo.SaveProject(ctx, project)
	if err != nil {
		s.LogError(ctx, err, "Failed to save project",
			slog.String("project_id", project.ProjectID))
		return nil, err
	}

	// Add creator as an admin to the new project
	membershipErr := s.AddUserToProject(ctx, creatorUserID, creatorUserID, projectID, domain.RoleAdmin)
	if membershipErr != nil {
		s.LogError(ctx, membershipErr, "Failed to add creator as admin to new project",
			slog.String("project_id", project.ProjectID),
			slog.String("user_id", creatorUserID))
	}

	s.LogInfo(ctx, "Project created successfully",
		slog.String("project_id", project.ProjectID),
		slog.String("creator_id", creatorUserID))
	return &project, nil
}

// UpdateProject updates an existing project's details; requires ADMIN.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, name, description *string, userID string) (*domain.Project, error) {
	if err := s.AuthorizeUserAction(ctx, userID, projectID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		project.Name = *name
	}
	if description != nil {
		project.Description = *description
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project",
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Project updated successfully",
		slog.String("project_id", projectID))
	return project, nil
}

// DeactivateProject disables a project; requires ADMIN.
func (s *projectService) DeactivateProject(ctx context.Context, projectID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, projectID, domain.RoleAdmin); err != nil {
		return err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !project.IsActive {
		return apperrors.NewConflictError("project is already inactive")
	}

	project.IsActive = false
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to deactivate project",
			slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "Project deactivated",
		slog.String("project_id", projectID),
		slog.String("user_id", requestingUserID))
	return nil
}

// AddUserToProject adds a user to a project with a specific role
func (s *projectService) AddUserToProject(ctx context.Context, addingUserID, targetUserID, projectID string, role domain.UserProjectRole) error {
	// Self-assignment is permitted (e.g., creator adding self as admin)
	if addingUserID != targetUserID {
		err := s.AuthorizeUserAction(ctx, addingUserID, projectID, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "User not authorized to add members to project",
				slog.String("adding_user_id", addingUserID),
				slog.String("project_id", projectID))
			return err
		}
	}

	membership := domain.UserProject{
		UserID:    targetUserID,
		ProjectID: projectID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	err := s.projectRepo.AddUserToProject(ctx, membership)
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to project",
			slog.String("target_user_id", targetUserID),
			slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "User added to project successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("project_id", projectID),
		slog.String("role", string(role)))
	return nil
}

// ListProjectUsers retrieves all memberships of a project
func (s *projectService) ListProjectUsers(ctx context.Context, projectID string, requestingUserID string) ([]domain.UserProject, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.projectRepo.ListProjectUsers(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list project users",
			slog.String("project_id", projectID))
		return nil, err
	}

	if memberships == nil {
		return []domain.UserProject{}, nil
	}

	return memberships, nil
}

// UpdateUserProjectRole changes a member's role; requires ADMIN.
func (s *projectService) UpdateUserProjectRole(ctx context.Context, requestingUserID, targetUserID, projectID string, newRole domain.UserProjectRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, projectID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID && newRole != domain.RoleAdmin {
		// An admin demoting themselves could leave the project unmanageable.
		return apperrors.NewValidationFailedError("admins cannot demote themselves")
	}

	if err := s.projectRepo.UpdateUserProjectRole(ctx, targetUserID, projectID, newRole); err != nil {
		s.LogError(ctx, err, "Failed to update project role",
			slog.String("target_user_id", targetUserID),
			slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "Project role updated",
		slog.String("target_user_id", targetUserID),
		slog.String("project_id", projectID),
		slog.String("new_role", string(newRole)))
	return nil
}

// RemoveUserFromProject marks a member as removed; requires ADMIN.
func (s *projectService) RemoveUserFromProject(ctx context.Context, requestingUserID, targetUserID, projectID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, projectID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID {
		return apperrors.NewValidationFailedError("admins cannot remove themselves")
	}

	if err := s.projectRepo.UpdateUserProjectRole(ctx, targetUserID, projectID, domain.RoleRemoved); err != nil {
		s.LogError(ctx, err, "Failed to remove user from project",
			slog.String("target_user_id", targetUserID),
			slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "User removed from project",
		slog.String("target_user_id", targetUserID),
		slog.String("project_id", projectID))
	return nil
}
