package payroll

import "errors"

var (
	// ErrNoPendingAttendance means the approval selection was empty.
	ErrNoPendingAttendance = errors.New("no attendance records found to approve")
)
