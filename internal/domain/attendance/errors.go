package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDateMismatch       = errors.New("date does not match the day_index of the payroll period")
)
