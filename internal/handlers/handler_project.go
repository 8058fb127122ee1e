package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/caixadigital/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects and their members.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{
		projectService: ps,
	}
}

// registerProjectRoutes registers routes related to projects and their members.
// It also registers company, account, transaction and report routes nested
// under a specific project.
func registerProjectRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newProjectHandler(services.Project)

	// Routes for managing projects themselves
	projectsTopLevel := rg.Group("/projects")
	{
		projectsTopLevel.POST("", h.createProject)
		projectsTopLevel.GET("", h.listUserProjects)
	}

	// Routes specific to a single project
	projectSpecific := rg.Group("/projects/:project_id")
	{
		projectSpecific.GET("", h.getProject)
		projectSpecific.PUT("", h.updateProject)
		projectSpecific.DELETE("", h.deactivateProject)

		// Manage users within a project
		projectUsers := projectSpecific.Group("/users")
		{
			projectUsers.POST("", h.addUserToProject)
			projectUsers.GET("", h.listProjectUsers)
			projectUsers.PUT("/:user_id", h.updateUserRole)
			projectUsers.DELETE("/:user_id", h.removeUserFromProject)
		}

		registerCompanyRoutes(projectSpecific, services.Company)
		registerAccountRoutes(projectSpecific, services.Account)
		registerTransactionRoutes(projectSpecific, services.Transaction)
		registerReportingRoutes(projectSpecific, services.Balance, services.Reconciliation)
	}
}

// createProject godoc
// @Summary Create a new project
// @Description Creates a new project and assigns the creator as admin.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create project"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create project", slog.String("project_name", req.Name))

	project, err := h.projectService.CreateProject(c.Request.Context(), req.Name, req.Description, creatorUserID)
	if err != nil {
		logger.Error("Failed to create project in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listUserProjects godoc
// @Summary List projects for current user
// @Description Retrieves a list of projects the authenticated user belongs to.
// @Tags projects
// @Produce  json
// @Param   includeDisabled query bool false "Include disabled projects" default(false)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listUserProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"

	projects, err := h.projectService.ListUserProjects(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		logger.Error("Failed to list projects from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects))
}

// getProject godoc
// @Summary Get a project by ID
// @Description Retrieves details for a specific project.
// @Tags projects
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to retrieve project"
// @Security BearerAuth
// @Router /projects/{project_id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	project, err := h.projectService.FindProjectByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			logger.Error("Failed to get project from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Description Updates a project's name or description (requires admin permission).
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to update project"
// @Security BearerAuth
// @Router /projects/{project_id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, req.Name, req.Description, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deactivateProject godoc
// @Summary Deactivate a project
// @Description Disables a project (requires admin permission).
// @Tags projects
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Project already disabled"
// @Failure 500 {object} map[string]string "Failed to deactivate project"
// @Security BearerAuth
// @Router /projects/{project_id} [delete]
func (h *projectHandler) deactivateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.projectService.DeactivateProject(c.Request.Context(), projectID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate project")
		return
	}

	c.Status(http.StatusNoContent)
}

// addUserToProject godoc
// @Summary Add a user to a project
// @Description Adds a specified user to a project with a given role (requires admin permission).
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   user_details body dto.AddUserToProjectRequest true "User ID and Role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Project or user not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /projects/{project_id}/users [post]
func (h *projectHandler) addUserToProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	var req dto.AddUserToProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("project_id", projectID), slog.String("target_user_id", req.UserID))
	logger.Info("Received request to add user to project", slog.String("role", string(req.Role)))

	err := h.projectService.AddUserToProject(c.Request.Context(), addingUserID, req.UserID, projectID, req.Role)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add user to project")
		return
	}

	c.Status(http.StatusNoContent)
}

// listProjectUsers godoc
// @Summary List members of a project
// @Description Retrieves all memberships of the project.
// @Tags projects
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {array} dto.UserProjectResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /projects/{project_id}/users [get]
func (h *projectHandler) listProjectUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.projectService.ListProjectUsers(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserProjectResponse(members))
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates the role of a project member (requires admin permission).
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   user_id path string true "Target user ID"
// @Param   role body dto.UpdateUserProjectRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /projects/{project_id}/users/{user_id} [put]
func (h *projectHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateUserProjectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.projectService.UpdateUserProjectRole(c.Request.Context(), requestingUserID, targetUserID, projectID, req.Role)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update role")
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUserFromProject godoc
// @Summary Remove a member from a project
// @Description Marks a project member as removed (requires admin permission).
// @Tags projects
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   user_id path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to remove member"
// @Security BearerAuth
// @Router /projects/{project_id}/users/{user_id} [delete]
func (h *projectHandler) removeUserFromProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.projectService.RemoveUserFromProject(c.Request.Context(), requestingUserID, targetUserID, projectID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
