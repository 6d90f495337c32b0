package payroll

import (
	"context"
	"time"
)

type SummaryRepository interface {
	// Upsert inserts or replaces the row keyed by (employee, period, day_index).
	Upsert(ctx context.Context, entry SummaryEntry) error
	ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]SummaryEntry, error)
	ListByPeriod(ctx context.Context, periodID string) ([]SummaryEntry, error)
	Count(ctx context.Context, employeeID, periodID string) (rows int, lastSyncedAt *time.Time, err error)
	DeleteByEmployeePeriod(ctx context.Context, employeeID, periodID string) (int64, error)
}
