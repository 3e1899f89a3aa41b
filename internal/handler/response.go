package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

// errorStatus maps a domain error onto an HTTP status and error type.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrOutsideWindow):
		return http.StatusUnprocessableEntity, "outside_window"
	case errors.Is(err, domain.ErrReminderInactive):
		return http.StatusUnprocessableEntity, "reminder_inactive"
	case errors.Is(err, domain.ErrPrescriptionNotFound):
		return http.StatusConflict, "prescription_not_found"
	case errors.Is(err, domain.ErrReminderNotFound):
		return http.StatusNotFound, "reminder_not_found"
	case errors.Is(err, domain.ErrNoPatientContext):
		return http.StatusUnauthorized, "no_patient_context"
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusConflict, "duplicate_record"
	case errors.Is(err, domain.ErrRepositoryUnavailable):
		return http.StatusServiceUnavailable, "repository_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondDomainError(c *gin.Context, err error) {
	status, errType := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	attrs := []any{
		slog.String("error_type", errType),
		slog.String("error", err.Error()),
		slog.String("path", c.FullPath()),
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
	} else {
		slog.InfoContext(c.Request.Context(), "request rejected", attrs...)
	}

	respondError(c, status, errType, message)
}
