package response

import (
	"errors"
	"net/http"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/auth"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/report"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrAlreadyPunchedIn):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrRestDayPunchIn):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrNoOpenEntry):
		// The client is expected to offer a manual entry instead.
		BadRequest(w, err.Error(), map[string]string{
			"action_required": "manual_entry",
		})
	case errors.Is(err, timesheet.ErrPunchOrder):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrTimestampNotFound):
		NotFound(w, "Timestamp not found")
	case errors.Is(err, timesheet.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Calendar domain errors
	case errors.Is(err, calendar.ErrStaleSelection):
		Conflict(w, "Selection changed while loading, retry with the current month")
	case errors.Is(err, calendar.ErrUpstreamFetch):
		InternalServerError(w, "Failed to load timesheet entries")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidPermission):
		Unauthorized(w, "Invalid permission claim")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyUsernameExists):
		Conflict(w, "Company username already exists")

	// Report domain errors
	case errors.Is(err, report.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, report.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
