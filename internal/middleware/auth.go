package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APITokenAuth creates a Gin middleware handler that authenticates requests
// with a bearer API token. The token is resolved to a user through the user
// service; only the token's digest is ever compared server-side.
func APITokenAuth(userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be 'Bearer {token}'"})
			return
		}

		user, err := userSvc.AuthenticateToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Token authentication failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store the user ID in the context (using standard context)
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, user.UserID)

		// Add user ID to the logger
		enrichedLogger := logger.With(slog.String("user_id", user.UserID))

		// Store the enriched logger back into the standard context
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)

		// Update the request context
		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}
