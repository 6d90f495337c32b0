package payroll

import (
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// SummaryEntry is one frozen day of the payroll summary projection, keyed by
// (employee, period, day_index). Only approval writes it.
type SummaryEntry struct {
	EmployeeID string
	PeriodID   string
	DayIndex   int
	Date       time.Time
	Status     attendance.Status
	Amount     decimal.Decimal
	IsApproved bool
	ApprovedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s SummaryEntry) Outcome() attendance.DayOutcome {
	return attendance.FromSummary(s.Status, s.Amount)
}

// NewSummaryEntry freezes a classified attendance day.
func NewSummaryEntry(e attendance.Entry, outcome attendance.DayOutcome, approvedAt time.Time) SummaryEntry {
	return SummaryEntry{
		EmployeeID: e.EmployeeID,
		PeriodID:   e.PeriodID,
		DayIndex:   e.DayIndex,
		Date:       e.Date,
		Status:     outcome.Status(),
		Amount:     outcome.Amount,
		IsApproved: true,
		ApprovedAt: approvedAt,
	}
}
