package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/qbclone/qbclone_backend/internal/middleware"
)

// ledgerHandler handles the money-movement operations: payments, deposits,
// transfers, and manual journals.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the money-movement routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/payments/receive", h.receivePayment)
	rg.POST("/payments/pay-bills", h.payBills)
	rg.GET("/payments/undeposited", h.listUndepositedPayments)
	rg.POST("/deposits", h.makeDeposit)
	rg.POST("/transfers", h.transferFunds)
	rg.POST("/journal", h.postManualJournal)

	// The reads that drive the receive-payment and make-deposit workflows.
	rg.GET("/customers/:id/open-invoices", h.listOpenInvoices)
	rg.GET("/vendors/:id/open-bills", h.listOpenBills)
}

func (h *ledgerHandler) listOpenInvoices(c *gin.Context) {
	txns, err := h.ledgerService.ListOpenInvoices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list open invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *ledgerHandler) listOpenBills(c *gin.Context) {
	txns, err := h.ledgerService.ListOpenBills(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list open bills")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *ledgerHandler) listUndepositedPayments(c *gin.Context) {
	txns, err := h.ledgerService.ListUndepositedPayments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list undeposited payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *ledgerHandler) receivePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceivePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind receive payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ReceivePayment(c.Request.Context(), req)
	if err != nil {
		logger.Warn("failed to receive payment", slog.String("error", err.Error()))
		respondError(c, err, "Failed to receive payment")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ledgerHandler) payBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind pay bills request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.PayBills(c.Request.Context(), req)
	if err != nil {
		logger.Warn("failed to pay bills", slog.String("error", err.Error()))
		respondError(c, err, "Failed to pay bills")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ledgerHandler) makeDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MakeDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind make deposit request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.MakeDeposit(c.Request.Context(), req)
	if err != nil {
		logger.Warn("failed to make deposit", slog.String("error", err.Error()))
		respondError(c, err, "Failed to make deposit")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ledgerHandler) transferFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind transfer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.TransferFunds(c.Request.Context(), req)
	if err != nil {
		logger.Warn("failed to transfer funds", slog.String("error", err.Error()))
		respondError(c, err, "Failed to transfer funds")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ledgerHandler) postManualJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostManualJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind manual journal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.PostManualJournal(c.Request.Context(), req)
	if err != nil {
		logger.Warn("failed to post manual journal", slog.String("error", err.Error()))
		respondError(c, err, "Failed to post manual journal")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
