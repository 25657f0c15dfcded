package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/services"
)

// respondError maps service errors onto HTTP status codes. Ledger rejections
// (unbalanced entries, transfer guards, over-application) are caller faults
// and come back as 400 with the sentinel's message preserved for diagnostics.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnbalancedEntry),
		errors.Is(err, services.ErrInsufficientEntries),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrDocumentSettled),
		errors.Is(err, services.ErrOverApplication):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
