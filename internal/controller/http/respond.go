package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketescrow/internal/controller/apperror"
)

// respondError maps the sentinel error taxonomy onto HTTP statuses.
// Unexpected errors get an incident reference instead of internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrMarkupTooHigh),
		errors.Is(err, apperror.ErrPriceOverTier),
		errors.Is(err, apperror.ErrQuotaExceeded),
		errors.Is(err, apperror.ErrOversell),
		errors.Is(err, apperror.ErrProofsMissing):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, apperror.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	case errors.Is(err, apperror.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})

	case errors.Is(err, apperror.ErrListingNotFound),
		errors.Is(err, apperror.ErrOrderNotFound),
		errors.Is(err, apperror.ErrTransferNotFound),
		errors.Is(err, apperror.ErrDisputeNotFound),
		errors.Is(err, apperror.ErrVerificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, apperror.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": err.Error()})

	case errors.Is(err, apperror.ErrExternalDependency):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})

	default:
		incident := uuid.New().String()
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"incident", incident, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":  "internal error",
			"incident": incident,
		})
	}
}
