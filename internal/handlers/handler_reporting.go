package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
)

// reportingHandler handles HTTP requests for the derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/ar-aging", h.arAging)
		reports.GET("/ap-aging", h.apAging)
		reports.GET("/cash-flow", h.cashFlowProjection)
	}
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	report, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	report, err := h.reportingService.IncomeStatement(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) arAging(c *gin.Context) {
	report, err := h.reportingService.ArAging(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build receivables aging")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) apAging(c *gin.Context) {
	report, err := h.reportingService.ApAging(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build payables aging")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) cashFlowProjection(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer"})
		return
	}
	projection, err := h.reportingService.CashFlowProjection(c.Request.Context(), months)
	if err != nil {
		respondError(c, err, "Failed to build cash flow projection")
		return
	}
	c.JSON(http.StatusOK, projection)
}
