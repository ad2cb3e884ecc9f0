package response

import (
	"errors"
	"net/http"

	"github.com/officetrack/officetrack-backend-go/internal/domain/attendance"
	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/officetrack/officetrack-backend-go/internal/domain/report"
	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
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
	// Event domain errors
	case errors.Is(err, event.ErrInvalidAction):
		BadRequest(w, "Invalid action", nil)
	case errors.Is(err, event.ErrInvalidLocation):
		BadRequest(w, "Invalid location", nil)

	// Token domain errors
	case errors.Is(err, token.ErrTokenNotFound):
		NotFound(w, "Token not found")
	case errors.Is(err, token.ErrNoActiveToken):
		NotFound(w, "No active token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidToken):
		BadRequest(w, "Invalid or expired token", nil)

	// Person / report domain errors
	case errors.Is(err, person.ErrPersonNotFound):
		NotFound(w, "Person not found")
	case errors.Is(err, report.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
