package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollSummaryRepository(db *database.DB) payroll.SummaryRepository {
	return &payrollRepository{db: db}
}

const summaryColumns = `employee_id, payroll_period_id, day_index, date, status, amount,
	is_approved, approved_at, created_at, updated_at`

func scanSummary(row pgx.Row) (payroll.SummaryEntry, error) {
	var s payroll.SummaryEntry
	err := row.Scan(
		&s.EmployeeID, &s.PeriodID, &s.DayIndex, &s.Date, &s.Status, &s.Amount,
		&s.IsApproved, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *payrollRepository) Upsert(ctx context.Context, entry payroll.SummaryEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_summary (
			employee_id, payroll_period_id, day_index, date, status, amount, is_approved, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, payroll_period_id, day_index) DO UPDATE SET
			date = EXCLUDED.date,
			status = EXCLUDED.status,
			amount = EXCLUDED.amount,
			is_approved = EXCLUDED.is_approved,
			approved_at = EXCLUDED.approved_at,
			updated_at = NOW()`

	_, err := q.Exec(ctx, query,
		entry.EmployeeID, entry.PeriodID, entry.DayIndex, entry.Date,
		entry.Status, entry.Amount, entry.IsApproved, entry.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert payroll summary: %w", database.WrapUnavailable(err))
	}

	return nil
}

func (r *payrollRepository) ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]payroll.SummaryEntry, error) {
	query := `SELECT ` + summaryColumns + ` FROM payroll_summary
		WHERE employee_id = $1 AND payroll_period_id = $2
		ORDER BY day_index`
	return r.list(ctx, query, employeeID, periodID)
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, periodID string) ([]payroll.SummaryEntry, error) {
	query := `SELECT ` + summaryColumns + ` FROM payroll_summary
		WHERE payroll_period_id = $1
		ORDER BY employee_id, day_index`
	return r.list(ctx, query, periodID)
}

func (r *payrollRepository) list(ctx context.Context, query string, args ...interface{}) ([]payroll.SummaryEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll summary: %w", database.WrapUnavailable(err))
	}
	defer rows.Close()

	var entries []payroll.SummaryEntry
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll summary: %w", err)
		}
		entries = append(entries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll summary: %w", err)
	}

	return entries, nil
}

func (r *payrollRepository) Count(ctx context.Context, employeeID, periodID string) (int, *time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var (
		count    int
		lastSync *time.Time
	)
	err := q.QueryRow(ctx,
		`SELECT COUNT(*), MAX(updated_at) FROM payroll_summary WHERE employee_id = $1 AND payroll_period_id = $2`,
		employeeID, periodID,
	).Scan(&count, &lastSync)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count payroll summary: %w", database.WrapUnavailable(err))
	}

	return count, lastSync, nil
}

func (r *payrollRepository) DeleteByEmployeePeriod(ctx context.Context, employeeID, periodID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_summary WHERE employee_id = $1 AND payroll_period_id = $2`, employeeID, periodID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll summary: %w", database.WrapUnavailable(err))
	}

	return tag.RowsAffected(), nil
}
