package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, validationErrs.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, "Access denied. No token provided.")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password.")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Access denied. Admin role required.")

	// Employee domain errors
	case errors.Is(err, employee.ErrIncorrectPassword):
		Unauthorized(w, "Current password is incorrect.")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found.")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already in use.")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found.")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found.")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request has already been processed.")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Invalid leave status transition.")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "Server error.")
	}
}
