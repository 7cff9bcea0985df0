package response

import (
	"errors"
	"net/http"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/request"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]interface{})
		for field, message := range validationErrs.ToMap() {
			details[field] = message
		}
		ValidationError(w, details)
		return
	}

	// A monthly submission blocked by incomplete days reports exactly which
	// dates are outstanding.
	var incompleteErr *attendance.IncompleteAttendanceError
	if errors.As(err, &incompleteErr) {
		UnprocessableEntity(w, "INCOMPLETE_ATTENDANCE", "Month has incomplete attendance records", map[string]interface{}{
			"missing_dates": incompleteErr.MissingDates,
			"absent_dates":  incompleteErr.AbsentDates,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee code or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccessDenied):
		Forbidden(w, "Access denied")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeRetired):
		Forbidden(w, "Employee has retired")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidAdjustment):
		BadRequest(w, "Paid leave balance would go out of bounds")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrFixedAttendance):
		Conflict(w, "Attendance record is fixed and cannot be modified")
	case errors.Is(err, attendance.ErrMonthAlreadySubmitted):
		Conflict(w, "Month has already been submitted")

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrDuplicateRequest):
		Conflict(w, "A request for this date already exists")
	case errors.Is(err, request.ErrRequestAlreadyProcessed):
		Conflict(w, "Request has already been processed")
	case errors.Is(err, request.ErrInsufficientLeaveDays):
		BadRequest(w, "Insufficient paid leave days remaining")
	case errors.Is(err, request.ErrInvalidRequestType):
		BadRequest(w, "Invalid request type")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
