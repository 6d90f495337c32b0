package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the raw status tag stored on an attendance row.
type Status string

const (
	StatusPresent Status = "present"
	StatusPartial Status = "partial"
	StatusAbsent  Status = "absent"
	StatusFixed   Status = "fixed"
	StatusNoIn    Status = "no_in"
	StatusNoOut   Status = "no_out"
)

// Sentinels stored in time_in/time_out for days that are not clock based.
const (
	TimeNone  = "-"
	TimeFixed = "FIXED"
)

// Entry is one (employee, period, day_index) attendance row.
type Entry struct {
	EmployeeID   string
	PeriodID     string
	DayIndex     int
	Date         time.Time
	TimeIn       string
	TimeOut      string
	WorkingHours decimal.Decimal
	Status       Status
	Amount       decimal.Decimal
	IsWeekend    bool
	IsApproved   bool
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Entry) Raw() RawInput {
	return RawInput{
		TimeIn:  e.TimeIn,
		TimeOut: e.TimeOut,
		Status:  e.Status,
		Amount:  e.Amount,
	}
}

// ApprovalCounts summarises the approval flags of one (employee, period) pair.
type ApprovalCounts struct {
	TotalDays       int
	ApprovedDays    int
	FirstApprovedAt *time.Time
	LastApprovedAt  *time.Time
}
