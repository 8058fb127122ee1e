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

// authHandler handles registration and API token issuance.
type authHandler struct {
	userService portssvc.UserSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{
		userService: us,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, userService portssvc.UserSvcFacade) {
	h := newAuthHandler(userService)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/tokens", h.issueToken)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account with an email and password.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Failed to create user"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		} else {
			logger.Error("Failed to create user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// issueToken godoc
// @Summary Issue an API token
// @Description Exchanges email and password for a fresh API token. The token plaintext is only returned once.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.IssueTokenRequest true "Credentials and token label"
// @Success 201 {object} dto.APITokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Failed to issue token"
// @Router /auth/tokens [post]
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticatePassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Credential check failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			logger.Error("Failed to authenticate credentials", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		}
		return
	}

	plaintext, token, err := h.userService.CreateAPIToken(c.Request.Context(), user.UserID, req.Name)
	if err != nil {
		logger.Error("Failed to create API token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("API token issued", slog.String("user_id", user.UserID), slog.String("token_id", token.TokenID))
	c.JSON(http.StatusCreated, dto.APITokenResponse{
		TokenID:   token.TokenID,
		Name:      token.Name,
		Token:     plaintext,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	})
}
