package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
)

// respondDomainError translates the service error taxonomy into HTTP
// responses. Handlers call it after their own happy-path handling.
func respondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	var conflictErr *apperrors.ConflictError
	var confErr *apperrors.ConfigurationError
	var integrityErr *apperrors.DataIntegrityError
	var balanceErr *apperrors.BalanceError

	switch {
	case errors.As(err, &conflictErr):
		logger.Warn("Conflicting operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":    conflictErr.Error(),
			"date":     conflictErr.Date,
			"batchRef": conflictErr.BatchRef,
		})
	case errors.As(err, &confErr):
		logger.Warn("Configuration incomplete", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Configuration incomplete",
			"missing": confErr.Missing,
		})
	case errors.As(err, &integrityErr):
		logger.Warn("Data integrity failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       integrityErr.Error(),
			"bookingRefs": integrityErr.BookingRefs,
		})
	case errors.As(err, &balanceErr):
		logger.Error("Journal out of balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": balanceErr.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseDateQuery reads the ?date=YYYY-MM-DD query parameter, defaulting
// to today when absent.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date.UTC(), true
}
