package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/caixadigital/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for balance and reconciliation reports.
type reportingHandler struct {
	balanceService        portssvc.BalanceService
	reconciliationService portssvc.ReconciliationService
}

func newReportingHandler(bs portssvc.BalanceService, rs portssvc.ReconciliationService) *reportingHandler {
	return &reportingHandler{
		balanceService:        bs,
		reconciliationService: rs,
	}
}

// registerReportingRoutes registers report routes nested under a project.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceService, reconciliationService portssvc.ReconciliationService) {
	h := newReportingHandler(balanceService, reconciliationService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.getBalanceReport)
		reports.GET("/reconciliation", h.getReconciliationReport)
		reports.GET("/reconciliation/:account_id", h.getAccountReconciliation)
	}
}

// getBalanceReport godoc
// @Summary Balance report
// @Description Returns, per account, the opening balance strictly before asOf and the net movement per calendar month over [from, to]. Only active, settled transactions count.
// @Tags reports
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   asOf query string true "Opening balance cutoff (YYYY-MM-DD, exclusive)"
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceReportResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /projects/{project_id}/reports/balances [get]
func (h *reportingHandler) getBalanceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	var params dto.BalanceReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for BalanceReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf, err := time.Parse("2006-01-02", params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}
	from, err := time.Parse("2006-01-02", params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reports, err := h.balanceService.ComputeBalances(c.Request.Context(), projectID, asOf, from, to, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate report")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(reports, asOf, from, to))
}

// getReconciliationReport godoc
// @Summary Reconciliation report
// @Description Compares every account's stored running balance with the balance recomputed from full history. Reports drift, never corrects it.
// @Tags reports
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ReconciliationReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to reconcile"
// @Security BearerAuth
// @Router /projects/{project_id}/reports/reconciliation [get]
func (h *reportingHandler) getReconciliationReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reconciliationService.VerifyProject(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationReportResponse(report))
}

// getAccountReconciliation godoc
// @Summary Reconcile a single account
// @Description Compares one account's stored running balance with its recomputed balance.
// @Tags reports
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountReconciliationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to reconcile"
// @Security BearerAuth
// @Router /projects/{project_id}/reports/reconciliation/{account_id} [get]
func (h *reportingHandler) getAccountReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconciliationService.VerifyAccount(c.Request.Context(), projectID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountReconciliationResponse(result))
}
