package payroll

import (
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ApproveRequest struct {
	EmployeeID    string `json:"employee_id"`
	PeriodID      string `json:"payroll_period_id"`
	SyncToPayroll *bool  `json:"sync_to_payroll"`
	ForceResync   bool   `json:"force_resync"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.PeriodID) {
		errs.Add("payroll_period_id", "payroll_period_id is required")
	}
	return errs.Err()
}

// Sync defaults to true when the client omits sync_to_payroll.
func (r *ApproveRequest) Sync() bool {
	return r.SyncToPayroll == nil || *r.SyncToPayroll
}

type ApprovedDay struct {
	DayIndex int                   `json:"day_index"`
	Status   attendance.Status     `json:"status"`
	Amount   decimal.Decimal       `json:"amount"`
	Outcome  attendance.DayOutcome `json:"outcome"`
}

type ApproveResponse struct {
	EmployeeID       string        `json:"employee_id"`
	PeriodID         string        `json:"payroll_period_id"`
	RecordsProcessed int           `json:"records_processed"`
	SyncedToPayroll  bool          `json:"synced_to_payroll"`
	ApprovedAt       time.Time     `json:"approved_at"`
	Days             []ApprovedDay `json:"days"`
}

type UnapproveResponse struct {
	EmployeeID     string `json:"employee_id"`
	PeriodID       string `json:"payroll_period_id"`
	RecordsUpdated int64  `json:"records_updated"`
	// SummaryRowsRetained counts synced rows that unapprove leaves in place.
	SummaryRowsRetained int `json:"summary_rows_retained"`
}

type BulkApproveRequest struct {
	EmployeeIDs   []string `json:"employee_ids"`
	PeriodID      string   `json:"payroll_period_id"`
	SyncToPayroll *bool    `json:"sync_to_payroll"`
	ForceResync   bool     `json:"force_resync"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.EmployeeIDs) == 0 {
		errs.Add("employee_ids", "employee_ids must contain at least one employee")
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs.Add("employee_ids", "employee_ids cannot contain empty values")
			break
		}
	}
	if validator.IsEmpty(r.PeriodID) {
		errs.Add("payroll_period_id", "payroll_period_id is required")
	}
	return errs.Err()
}

type BulkApproveResult struct {
	EmployeeID       string `json:"employee_id"`
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RecordsProcessed int    `json:"records_processed"`
}

type BulkApproveResponse struct {
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BulkApproveResult `json:"results"`
}

type CanEditResponse struct {
	CanEdit       bool `json:"can_edit"`
	ApprovedCount int  `json:"approved_count"`
	PayrollCount  int  `json:"payroll_count"`
}

type ApprovalStatusResponse struct {
	EmployeeID      string        `json:"employee_id"`
	PeriodID        string        `json:"payroll_period_id"`
	State           ApprovalState `json:"state"`
	TotalDays       int           `json:"total_days"`
	ApprovedDays    int           `json:"approved_days"`
	PayrollEntries  int           `json:"payroll_entries"`
	FirstApproval   *time.Time    `json:"first_approval"`
	LastApproval    *time.Time    `json:"last_approval"`
	LastPayrollSync *time.Time    `json:"last_payroll_sync"`
	IsFullyApproved bool          `json:"is_fully_approved"`
	SyncedToPayroll bool          `json:"synced_to_payroll"`
	StaleSync       bool          `json:"stale_sync"`
}

func ToStatusResponse(employeeID, periodID string, s ApprovalSnapshot) ApprovalStatusResponse {
	return ApprovalStatusResponse{
		EmployeeID:      employeeID,
		PeriodID:        periodID,
		State:           s.State(),
		TotalDays:       s.TotalDays,
		ApprovedDays:    s.ApprovedDays,
		PayrollEntries:  s.SummaryRows,
		FirstApproval:   s.FirstApprovedAt,
		LastApproval:    s.LastApprovedAt,
		LastPayrollSync: s.LastSyncedAt,
		IsFullyApproved: s.FullyApproved(),
		SyncedToPayroll: s.Synced(),
		StaleSync:       s.StaleSync(),
	}
}

type DailyTotalsResponse struct {
	Period      period.PeriodResponse `json:"period"`
	Dates       []period.Day          `json:"dates"`
	DailyTotals []decimal.Decimal     `json:"daily_totals"`
	GrandTotal  decimal.Decimal       `json:"grand_total"`
}
