package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type periodRepositoryImpl struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) period.PeriodRepository {
	return &periodRepositoryImpl{db: db}
}

const periodColumns = `id, year, month, start_day, end_day, created_at, updated_at`

func scanPeriod(row pgx.Row) (period.Period, error) {
	var p period.Period
	err := row.Scan(&p.ID, &p.Year, &p.Month, &p.StartDay, &p.EndDay, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *periodRepositoryImpl) Create(ctx context.Context, p period.Period) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return period.Period{}, fmt.Errorf("generate period id: %w", err)
		}
		p.ID = id.String()
	}

	query := `
		INSERT INTO payroll_periods (id, year, month, start_day, end_day)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query, p.ID, p.Year, p.Month, p.StartDay, p.EndDay))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return period.Period{}, period.ErrPeriodOverlap
		}
		return period.Period{}, fmt.Errorf("failed to create payroll period: %w", database.WrapUnavailable(err))
	}

	return created, nil
}

func (r *periodRepositoryImpl) GetByID(ctx context.Context, id string) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPeriod(q.QueryRow(ctx, `SELECT `+periodColumns+` FROM payroll_periods WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.Period{}, period.ErrPeriodNotFound
		}
		return period.Period{}, fmt.Errorf("failed to get payroll period: %w", database.WrapUnavailable(err))
	}

	return p, nil
}

// List returns every period in calendar order. Month names sort in Go
// because the column holds names, not numbers.
func (r *periodRepositoryImpl) List(ctx context.Context) ([]period.Period, error) {
	periods, err := r.list(ctx, `SELECT `+periodColumns+` FROM payroll_periods`)
	if err != nil {
		return nil, err
	}
	period.Sort(periods)
	return periods, nil
}

func (r *periodRepositoryImpl) ListByMonth(ctx context.Context, year int, month string) ([]period.Period, error) {
	periods, err := r.list(ctx,
		`SELECT `+periodColumns+` FROM payroll_periods WHERE year = $1 AND LOWER(month) = LOWER($2) ORDER BY start_day`,
		year, month,
	)
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *periodRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]period.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", database.WrapUnavailable(err))
	}
	defer rows.Close()

	var periods []period.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}

	return periods, nil
}
