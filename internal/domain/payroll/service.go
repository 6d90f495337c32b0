package payroll

import (
	"context"
	"io"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
)

type PayrollService interface {
	// Approve flags the pair's selected days and, unless sync is disabled,
	// freezes them into the payroll summary. All or nothing.
	Approve(ctx context.Context, req ApproveRequest) (ApproveResponse, error)
	// BulkApprove runs one independent Approve per employee.
	BulkApprove(ctx context.Context, req BulkApproveRequest) (BulkApproveResponse, error)
	// Unapprove clears approval flags and leaves synced summary rows in place.
	Unapprove(ctx context.Context, req attendance.PairRequest) (UnapproveResponse, error)
	CanEdit(ctx context.Context, req attendance.PairRequest) (CanEditResponse, error)
	ApprovalStatus(ctx context.Context, req attendance.PairRequest) (ApprovalStatusResponse, error)

	GetSummary(ctx context.Context, periodID string) (SummaryReport, error)
	// RefreshSummary rebuilds the report from the store and overwrites the
	// cached copy without reading it.
	RefreshSummary(ctx context.Context, periodID string) (SummaryReport, error)
	GetDailyTotals(ctx context.Context, periodID string) (DailyTotalsResponse, error)
	ExportCSV(ctx context.Context, periodID string, w io.Writer) error
	// DeleteSummary hard deletes the pair's summary rows without approval checks.
	DeleteSummary(ctx context.Context, req attendance.PairRequest) (attendance.DeleteResponse, error)
}
