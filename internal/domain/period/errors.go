package period

import "errors"

var (
	ErrPeriodNotFound     = errors.New("payroll period not found")
	ErrNoCurrentPeriod    = errors.New("no payroll period covers today")
	ErrPeriodOverlap      = errors.New("payroll period overlaps an existing period")
	ErrInvalidMonth       = errors.New("invalid month name")
	ErrInvalidDayRange    = errors.New("start_day and end_day must satisfy 1 <= start_day <= end_day <= days in month")
	ErrDayIndexOutOfRange = errors.New("day_index is outside the payroll period")
)
