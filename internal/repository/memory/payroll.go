package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
)

type summaryRepo struct {
	s *Store
}

func (r *summaryRepo) Upsert(ctx context.Context, entry payroll.SummaryEntry) error {
	defer r.s.lock(ctx)()

	now := r.s.now()
	key := dayKey{entry.EmployeeID, entry.PeriodID, entry.DayIndex}
	if existing, ok := r.s.data.summary[key]; ok {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	r.s.data.summary[key] = entry
	return nil
}

func (r *summaryRepo) ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]payroll.SummaryEntry, error) {
	defer r.s.lock(ctx)()
	return r.filter(func(k dayKey) bool { return k.employeeID == employeeID && k.periodID == periodID }), nil
}

func (r *summaryRepo) ListByPeriod(ctx context.Context, periodID string) ([]payroll.SummaryEntry, error) {
	defer r.s.lock(ctx)()
	return r.filter(func(k dayKey) bool { return k.periodID == periodID }), nil
}

func (r *summaryRepo) filter(keep func(dayKey) bool) []payroll.SummaryEntry {
	var out []payroll.SummaryEntry
	for k, s := range r.s.data.summary {
		if keep(k) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b payroll.SummaryEntry) int {
		if c := strings.Compare(a.EmployeeID, b.EmployeeID); c != 0 {
			return c
		}
		return a.DayIndex - b.DayIndex
	})
	return out
}

func (r *summaryRepo) Count(ctx context.Context, employeeID, periodID string) (int, *time.Time, error) {
	defer r.s.lock(ctx)()

	var (
		n    int
		last *time.Time
	)
	for k, s := range r.s.data.summary {
		if k.employeeID != employeeID || k.periodID != periodID {
			continue
		}
		n++
		if last == nil || s.UpdatedAt.After(*last) {
			at := s.UpdatedAt
			last = &at
		}
	}
	return n, last, nil
}

func (r *summaryRepo) DeleteByEmployeePeriod(ctx context.Context, employeeID, periodID string) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for k := range r.s.data.summary {
		if k.employeeID == employeeID && k.periodID == periodID {
			delete(r.s.data.summary, k)
			n++
		}
	}
	return n, nil
}
