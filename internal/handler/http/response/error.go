package response

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
)

var exposeInternal atomic.Bool

// ExposeInternalErrors adds the raw error text to 5xx responses as
// error.details.internal. Only development turns it on.
func ExposeInternalErrors(on bool) {
	exposeInternal.Store(on)
}

func internalDetails(err error) map[string]string {
	if !exposeInternal.Load() || err == nil {
		return nil
	}
	return map[string]string{"internal": err.Error()}
}

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
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotDemoteSelf):
		Conflict(w, "Cannot remove your own admin access")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidRateConfig):
		ValidationError(w, map[string]string{"rate_type": err.Error()})
	case errors.Is(err, employee.ErrPasswordNotSet):
		BadRequest(w, "Employee password has not been set", nil)
	case errors.Is(err, employee.ErrInvalidPassword):
		Unauthorized(w, "Current password is incorrect")

	// Period domain errors
	case errors.Is(err, period.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, period.ErrNoCurrentPeriod):
		NotFound(w, "No payroll period covers today")
	case errors.Is(err, period.ErrPeriodOverlap):
		Conflict(w, "Payroll period overlaps an existing period")
	case errors.Is(err, period.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": err.Error()})
	case errors.Is(err, period.ErrInvalidDayRange):
		ValidationError(w, map[string]string{"end_day": err.Error()})
	case errors.Is(err, period.ErrDayIndexOutOfRange):
		ValidationError(w, map[string]string{"day_index": err.Error()})

	// Attendance and payroll domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDateMismatch):
		ValidationError(w, map[string]string{"date": err.Error()})
	case errors.Is(err, payroll.ErrNoPendingAttendance):
		NotFound(w, "No attendance records found to approve")

	// Store errors
	case errors.Is(err, database.ErrConflict):
		Conflict(w, "Resource already exists")
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "Persistence store unavailable", internalDetails(err))
	case errors.Is(err, database.ErrTransactionFailed):
		TransactionFailed(w, "Transaction failed and was rolled back", internalDetails(err))

	// Default
	default:
		internalServerError(w, "An unexpected error occurred", internalDetails(err))
	}
}
