package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
)

type attendanceRepo struct {
	s *Store
}

func keyOf(e attendance.Entry) dayKey {
	return dayKey{employeeID: e.EmployeeID, periodID: e.PeriodID, dayIndex: e.DayIndex}
}

func sortEntries(entries []attendance.Entry) {
	slices.SortFunc(entries, func(a, b attendance.Entry) int {
		if c := strings.Compare(a.EmployeeID, b.EmployeeID); c != 0 {
			return c
		}
		return a.DayIndex - b.DayIndex
	})
}

func (r *attendanceRepo) Upsert(ctx context.Context, e attendance.Entry) (attendance.Entry, bool, error) {
	defer r.s.lock(ctx)()

	now := r.s.now()
	key := keyOf(e)
	existing, found := r.s.data.attendance[key]
	if found {
		e.CreatedAt = existing.CreatedAt
	} else {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.IsApproved = false
	e.ApprovedAt = nil
	r.s.data.attendance[key] = e
	return e, !found, nil
}

func (r *attendanceRepo) Get(ctx context.Context, employeeID, periodID string, dayIndex int) (attendance.Entry, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.attendance[dayKey{employeeID, periodID, dayIndex}]
	if !ok {
		return attendance.Entry{}, attendance.ErrAttendanceNotFound
	}
	return e, nil
}

func (r *attendanceRepo) ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]attendance.Entry, error) {
	defer r.s.lock(ctx)()
	return r.filter(func(e attendance.Entry) bool {
		return e.EmployeeID == employeeID && e.PeriodID == periodID
	}), nil
}

func (r *attendanceRepo) ListByPeriod(ctx context.Context, periodID string) ([]attendance.Entry, error) {
	defer r.s.lock(ctx)()
	return r.filter(func(e attendance.Entry) bool { return e.PeriodID == periodID }), nil
}

func (r *attendanceRepo) ListForApproval(ctx context.Context, employeeID, periodID string, includeApproved bool) ([]attendance.Entry, error) {
	defer r.s.lock(ctx)()
	return r.filter(func(e attendance.Entry) bool {
		return e.EmployeeID == employeeID && e.PeriodID == periodID && (includeApproved || !e.IsApproved)
	}), nil
}

func (r *attendanceRepo) filter(keep func(attendance.Entry) bool) []attendance.Entry {
	var out []attendance.Entry
	for _, e := range r.s.data.attendance {
		if keep(e) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

func (r *attendanceRepo) SetApproval(ctx context.Context, employeeID, periodID string, dayIndices []int, approved bool, at time.Time) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for key, e := range r.s.data.attendance {
		if key.employeeID != employeeID || key.periodID != periodID {
			continue
		}
		if dayIndices != nil && !slices.Contains(dayIndices, key.dayIndex) {
			continue
		}
		e.IsApproved = approved
		if approved {
			stamp := at
			e.ApprovedAt = &stamp
		} else {
			e.ApprovedAt = nil
		}
		e.UpdatedAt = r.s.now()
		r.s.data.attendance[key] = e
		n++
	}
	return n, nil
}

func (r *attendanceRepo) CountApproval(ctx context.Context, employeeID, periodID string) (attendance.ApprovalCounts, error) {
	defer r.s.lock(ctx)()

	var c attendance.ApprovalCounts
	for key, e := range r.s.data.attendance {
		if key.employeeID != employeeID || key.periodID != periodID {
			continue
		}
		c.TotalDays++
		if !e.IsApproved {
			continue
		}
		c.ApprovedDays++
		if e.ApprovedAt == nil {
			continue
		}
		if c.FirstApprovedAt == nil || e.ApprovedAt.Before(*c.FirstApprovedAt) {
			first := *e.ApprovedAt
			c.FirstApprovedAt = &first
		}
		if c.LastApprovedAt == nil || e.ApprovedAt.After(*c.LastApprovedAt) {
			last := *e.ApprovedAt
			c.LastApprovedAt = &last
		}
	}
	return c, nil
}

func (r *attendanceRepo) Delete(ctx context.Context, employeeID, periodID string, dayIndex *int) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for key := range r.s.data.attendance {
		if key.employeeID != employeeID || key.periodID != periodID {
			continue
		}
		if dayIndex != nil && key.dayIndex != *dayIndex {
			continue
		}
		delete(r.s.data.attendance, key)
		n++
	}
	return n, nil
}
