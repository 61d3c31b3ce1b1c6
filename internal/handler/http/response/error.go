package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, "Manager or owner access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmailRequired):
		BadRequest(w, "Email parameter is required.", nil)
	case errors.Is(err, employee.ErrUserNotFound):
		NotFound(w, "User not found.")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, "Employee ID is required", nil)
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)

	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Request timed out", "error", err)
		ServiceUnavailable(w, "Attendance store did not respond in time")
	case errors.Is(err, context.Canceled):
		slog.Debug("Request canceled by client", "error", err)
		ServiceUnavailable(w, "Request canceled")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
