package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert writes the row keyed by (employee, period, day_index) and always
	// clears is_approved/approved_at. created reports whether it was an insert.
	Upsert(ctx context.Context, e Entry) (saved Entry, created bool, err error)
	Get(ctx context.Context, employeeID, periodID string, dayIndex int) (Entry, error)
	ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]Entry, error)
	ListByPeriod(ctx context.Context, periodID string) ([]Entry, error)

	// ListForApproval selects the rows an approval will touch (unapproved
	// only, or every row when includeApproved) and locks them until the
	// surrounding transaction ends.
	ListForApproval(ctx context.Context, employeeID, periodID string, includeApproved bool) ([]Entry, error)
	// SetApproval flags the given days; nil dayIndices means every row of the pair.
	SetApproval(ctx context.Context, employeeID, periodID string, dayIndices []int, approved bool, at time.Time) (int64, error)
	CountApproval(ctx context.Context, employeeID, periodID string) (ApprovalCounts, error)

	// Delete removes one day, or every day of the pair when dayIndex is nil.
	Delete(ctx context.Context, employeeID, periodID string, dayIndex *int) (int64, error)
}
