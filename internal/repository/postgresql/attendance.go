package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `employee_id, payroll_period_id, day_index, date, time_in, time_out,
	working_hours, status, amount, is_weekend, is_approved, approved_at, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Entry, error) {
	var e attendance.Entry
	err := row.Scan(
		&e.EmployeeID, &e.PeriodID, &e.DayIndex, &e.Date, &e.TimeIn, &e.TimeOut,
		&e.WorkingHours, &e.Status, &e.Amount, &e.IsWeekend, &e.IsApproved, &e.ApprovedAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Upsert implements attendance.AttendanceRepository. Every write clears the
// approval flags; xmax = 0 holds only for freshly inserted tuples.
func (a *attendanceRepository) Upsert(ctx context.Context, e attendance.Entry) (attendance.Entry, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			employee_id, payroll_period_id, day_index, date, time_in, time_out,
			working_hours, status, amount, is_weekend, is_approved, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, NULL)
		ON CONFLICT (employee_id, payroll_period_id, day_index) DO UPDATE SET
			date = EXCLUDED.date,
			time_in = EXCLUDED.time_in,
			time_out = EXCLUDED.time_out,
			working_hours = EXCLUDED.working_hours,
			status = EXCLUDED.status,
			amount = EXCLUDED.amount,
			is_weekend = EXCLUDED.is_weekend,
			is_approved = FALSE,
			approved_at = NULL,
			updated_at = NOW()
		RETURNING ` + attendanceColumns + `, (xmax = 0) AS inserted`

	var (
		saved   attendance.Entry
		created bool
	)
	err := q.QueryRow(ctx, query,
		e.EmployeeID, e.PeriodID, e.DayIndex, e.Date, e.TimeIn, e.TimeOut,
		e.WorkingHours, e.Status, e.Amount, e.IsWeekend,
	).Scan(
		&saved.EmployeeID, &saved.PeriodID, &saved.DayIndex, &saved.Date, &saved.TimeIn, &saved.TimeOut,
		&saved.WorkingHours, &saved.Status, &saved.Amount, &saved.IsWeekend, &saved.IsApproved, &saved.ApprovedAt,
		&saved.CreatedAt, &saved.UpdatedAt, &created,
	)
	if err != nil {
		return attendance.Entry{}, false, fmt.Errorf("failed to upsert attendance: %w", database.WrapUnavailable(err))
	}

	return saved, created, nil
}

// Get implements attendance.AttendanceRepository.
func (a *attendanceRepository) Get(ctx context.Context, employeeID, periodID string, dayIndex int) (attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE employee_id = $1 AND payroll_period_id = $2 AND day_index = $3`

	e, err := scanAttendance(q.QueryRow(ctx, query, employeeID, periodID, dayIndex))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Entry{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Entry{}, fmt.Errorf("failed to get attendance: %w", database.WrapUnavailable(err))
	}

	return e, nil
}

// ListByEmployeePeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]attendance.Entry, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE employee_id = $1 AND payroll_period_id = $2
		ORDER BY day_index`
	return a.list(ctx, query, employeeID, periodID)
}

// ListByPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByPeriod(ctx context.Context, periodID string) ([]attendance.Entry, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE payroll_period_id = $1
		ORDER BY employee_id, day_index`
	return a.list(ctx, query, periodID)
}

// ListForApproval implements attendance.AttendanceRepository. The rows stay
// locked until the caller's transaction ends, so a concurrent approval of the
// same pair waits and then sees them already approved.
func (a *attendanceRepository) ListForApproval(ctx context.Context, employeeID, periodID string, includeApproved bool) ([]attendance.Entry, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE employee_id = $1 AND payroll_period_id = $2 AND ($3 OR is_approved = FALSE)
		ORDER BY day_index
		FOR UPDATE`
	return a.list(ctx, query, employeeID, periodID, includeApproved)
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", database.WrapUnavailable(err))
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		e, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return entries, nil
}

// SetApproval implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetApproval(ctx context.Context, employeeID, periodID string, dayIndices []int, approved bool, at time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var approvedAt *time.Time
	if approved {
		approvedAt = &at
	}

	query := `
		UPDATE attendance
		SET is_approved = $3, approved_at = $4, updated_at = NOW()
		WHERE employee_id = $1 AND payroll_period_id = $2`
	args := []interface{}{employeeID, periodID, approved, approvedAt}
	if dayIndices != nil {
		query += ` AND day_index = ANY($5)`
		args = append(args, dayIndices)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to set attendance approval: %w", database.WrapUnavailable(err))
	}

	return tag.RowsAffected(), nil
}

// CountApproval implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountApproval(ctx context.Context, employeeID, periodID string) (attendance.ApprovalCounts, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE is_approved),
			   MIN(approved_at),
			   MAX(approved_at)
		FROM attendance
		WHERE employee_id = $1 AND payroll_period_id = $2`

	var c attendance.ApprovalCounts
	err := q.QueryRow(ctx, query, employeeID, periodID).Scan(
		&c.TotalDays, &c.ApprovedDays, &c.FirstApprovedAt, &c.LastApprovedAt,
	)
	if err != nil {
		return attendance.ApprovalCounts{}, fmt.Errorf("failed to count attendance approval: %w", database.WrapUnavailable(err))
	}

	return c, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, employeeID, periodID string, dayIndex *int) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `DELETE FROM attendance WHERE employee_id = $1 AND payroll_period_id = $2`
	args := []interface{}{employeeID, periodID}
	if dayIndex != nil {
		query += ` AND day_index = $3`
		args = append(args, *dayIndex)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", database.WrapUnavailable(err))
	}

	return tag.RowsAffected(), nil
}
