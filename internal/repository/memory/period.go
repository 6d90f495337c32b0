package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
)

type periodRepo struct {
	s *Store
}

func (r *periodRepo) Create(ctx context.Context, p period.Period) (period.Period, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.data.periods {
		if existing.Year == p.Year && strings.EqualFold(existing.Month, p.Month) && existing.StartDay == p.StartDay {
			return period.Period{}, period.ErrPeriodOverlap
		}
	}
	if p.ID == "" {
		id, err := newID()
		if err != nil {
			return period.Period{}, err
		}
		p.ID = id
	}
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.data.periods[p.ID] = p
	return p, nil
}

func (r *periodRepo) GetByID(ctx context.Context, id string) (period.Period, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.periods[id]
	if !ok {
		return period.Period{}, period.ErrPeriodNotFound
	}
	return p, nil
}

func (r *periodRepo) List(ctx context.Context) ([]period.Period, error) {
	defer r.s.lock(ctx)()

	out := make([]period.Period, 0, len(r.s.data.periods))
	for _, p := range r.s.data.periods {
		out = append(out, p)
	}
	period.Sort(out)
	return out, nil
}

func (r *periodRepo) ListByMonth(ctx context.Context, year int, month string) ([]period.Period, error) {
	defer r.s.lock(ctx)()

	var out []period.Period
	for _, p := range r.s.data.periods {
		if p.Year == year && strings.EqualFold(p.Month, month) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b period.Period) int { return a.StartDay - b.StartDay })
	return out, nil
}
