package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors to HTTP responses.
// fallbackMsg is returned on unexpected errors instead of the raw error text.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrTenantScopeRequired):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrBalanceConflict):
		// Retry budget exhausted on the account rows; the client may retry.
		logger.Warn("Balance update contention", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent balance update, please retry"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
