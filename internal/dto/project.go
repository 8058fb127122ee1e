package dto

import (
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
)

// --- Project DTOs ---

// CreateProjectRequest defines data for creating a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest defines data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectResponse defines data returned for a project.
type ProjectResponse struct {
	ProjectID     string    `json:"projectID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		Description:   p.Description,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ListProjectsResponse wraps a list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectsResponse converts a slice of domain.Project to DTO.
func ToListProjectsResponse(ps []domain.Project) ListProjectsResponse {
	list := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: list}
}

// --- Project Membership DTOs ---

// AddUserToProjectRequest defines data for adding a user to a project.
type AddUserToProjectRequest struct {
	UserID string                 `json:"userID" binding:"required"`
	Role   domain.UserProjectRole `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// UpdateUserProjectRoleRequest defines data for changing a member's role.
type UpdateUserProjectRoleRequest struct {
	Role domain.UserProjectRole `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// UserProjectResponse defines data returned about a user's membership.
type UserProjectResponse struct {
	UserID    string                 `json:"userID"`
	UserName  string                 `json:"userName,omitempty"`
	ProjectID string                 `json:"projectID"`
	Role      domain.UserProjectRole `json:"role"`
	JoinedAt  time.Time              `json:"joinedAt"`
}

// ToUserProjectResponse converts domain.UserProject to DTO.
func ToUserProjectResponse(up *domain.UserProject) UserProjectResponse {
	return UserProjectResponse{
		UserID:    up.UserID,
		UserName:  up.UserName,
		ProjectID: up.ProjectID,
		Role:      up.Role,
		JoinedAt:  up.JoinedAt,
	}
}

// ToListUserProjectResponse converts a slice of domain.UserProject to DTOs.
func ToListUserProjectResponse(ups []domain.UserProject) []UserProjectResponse {
	list := make([]UserProjectResponse, len(ups))
	for i, up := range ups {
		list[i] = ToUserProjectResponse(&up)
	}
	return list
}
