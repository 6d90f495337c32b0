package attendance

import (
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SaveAttendanceRequest struct {
	EmployeeID   string           `json:"employee_id"`
	PeriodID     string           `json:"payroll_period_id"`
	DayIndex     int              `json:"day_index"`
	Date         string           `json:"date"`
	TimeIn       *string          `json:"time_in"`
	TimeOut      *string          `json:"time_out"`
	WorkingHours *decimal.Decimal `json:"working_hours"`
	Amount       *decimal.Decimal `json:"amount"`
	Status       string           `json:"status"`
}

func (r *SaveAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.PeriodID) {
		errs.Add("payroll_period_id", "payroll_period_id is required")
	}
	if r.DayIndex < 1 {
		errs.Add("day_index", "day_index must be 1 or greater")
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	if r.TimeIn != nil && !isTimeValue(*r.TimeIn) {
		errs.Add("time_in", "time_in must be HH:MM, '-' or 'FIXED'")
	}
	if r.TimeOut != nil && !isTimeValue(*r.TimeOut) {
		errs.Add("time_out", "time_out must be HH:MM, '-' or 'FIXED'")
	}
	if validator.IsNegative(r.Amount) {
		errs.Add("amount", "amount cannot be negative")
	}
	if validator.IsNegative(r.WorkingHours) {
		errs.Add("working_hours", "working_hours cannot be negative")
	}

	return errs.Err()
}

func isTimeValue(s string) bool {
	return s == "" || s == TimeNone || s == TimeFixed || validator.IsValidClock(s)
}

func (r *SaveAttendanceRequest) SaveInput() SaveInput {
	return SaveInput{
		TimeIn:  timeOrNone(r.TimeIn),
		TimeOut: timeOrNone(r.TimeOut),
		Status:  r.Status,
		Amount:  r.Amount,
	}
}

func timeOrNone(s *string) string {
	if s == nil || *s == "" {
		return TimeNone
	}
	return *s
}

type AttendanceResponse struct {
	EmployeeID   string          `json:"employee_id"`
	PeriodID     string          `json:"payroll_period_id"`
	DayIndex     int             `json:"day_index"`
	Date         string          `json:"date"`
	TimeIn       string          `json:"time_in"`
	TimeOut      string          `json:"time_out"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	Status       Status          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	IsWeekend    bool            `json:"is_weekend"`
	IsApproved   bool            `json:"is_approved"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	Outcome      DayOutcome      `json:"outcome"`
}

func ToResponse(e Entry, outcome DayOutcome) AttendanceResponse {
	return AttendanceResponse{
		EmployeeID:   e.EmployeeID,
		PeriodID:     e.PeriodID,
		DayIndex:     e.DayIndex,
		Date:         e.Date.Format("2006-01-02"),
		TimeIn:       e.TimeIn,
		TimeOut:      e.TimeOut,
		WorkingHours: e.WorkingHours,
		Status:       e.Status,
		Amount:       e.Amount,
		IsWeekend:    e.IsWeekend,
		IsApproved:   e.IsApproved,
		ApprovedAt:   e.ApprovedAt,
		Outcome:      outcome,
	}
}

type SaveAttendanceResponse struct {
	Created    bool               `json:"created"`
	Updated    bool               `json:"updated"`
	Attendance AttendanceResponse `json:"attendance"`
}

// PairRequest addresses one (employee, period) pair, optionally one day of it.
type PairRequest struct {
	EmployeeID string `json:"employee_id"`
	PeriodID   string `json:"payroll_period_id"`
	DayIndex   *int   `json:"day_index,omitempty"`
}

func (r *PairRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.PeriodID) {
		errs.Add("payroll_period_id", "payroll_period_id is required")
	}
	if r.DayIndex != nil && *r.DayIndex < 1 {
		errs.Add("day_index", "day_index must be 1 or greater")
	}
	return errs.Err()
}

type DeleteResponse struct {
	AffectedRows int64 `json:"affected_rows"`
}

type EmployeeAttendance struct {
	EmployeeID string               `json:"employee_id"`
	Entries    []AttendanceResponse `json:"entries"`
}

type PeriodAttendanceResponse struct {
	Period    period.PeriodResponse `json:"period"`
	Dates     []period.Day          `json:"dates"`
	Employees []EmployeeAttendance  `json:"employees"`
}
