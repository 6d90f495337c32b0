package period

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
)

type PeriodServiceImpl struct {
	periodRepo period.PeriodRepository
	logger     *slog.Logger
	now        func() time.Time
}

func NewPeriodService(periodRepo period.PeriodRepository, logger *slog.Logger) period.PeriodService {
	return &PeriodServiceImpl{
		periodRepo: periodRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PeriodServiceImpl) ListPeriods(ctx context.Context) ([]period.PeriodResponse, error) {
	periods, err := s.periodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]period.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		resp = append(resp, period.ToResponse(p))
	}
	return resp, nil
}

// GetCurrentPeriod returns the period whose day range covers today. When
// periods overlap the earliest starting one wins.
func (s *PeriodServiceImpl) GetCurrentPeriod(ctx context.Context) (period.PeriodResponse, error) {
	today := s.now()
	month := today.Month().String()

	periods, err := s.periodRepo.ListByMonth(ctx, today.Year(), month)
	if err != nil {
		return period.PeriodResponse{}, err
	}
	for _, p := range periods {
		if p.Contains(today) {
			return period.ToResponse(p), nil
		}
	}
	return period.PeriodResponse{}, period.ErrNoCurrentPeriod
}

func (s *PeriodServiceImpl) GetPeriod(ctx context.Context, id string) (period.PeriodResponse, error) {
	p, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return period.PeriodResponse{}, err
	}
	return period.ToResponse(p), nil
}

func (s *PeriodServiceImpl) CreatePeriod(ctx context.Context, req period.CreatePeriodRequest) (period.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.PeriodResponse{}, err
	}

	month, _ := period.CanonicalMonth(req.Month)
	newPeriod := period.Period{
		Year:     req.Year,
		Month:    month,
		StartDay: req.StartDay,
		EndDay:   req.EndDay,
	}

	existing, err := s.periodRepo.ListByMonth(ctx, newPeriod.Year, newPeriod.Month)
	if err != nil {
		return period.PeriodResponse{}, err
	}
	for _, p := range existing {
		if p.Overlaps(newPeriod) {
			return period.PeriodResponse{}, period.ErrPeriodOverlap
		}
	}

	created, err := s.periodRepo.Create(ctx, newPeriod)
	if err != nil {
		return period.PeriodResponse{}, err
	}

	s.logger.Info("payroll period created", "period_id", created.ID, "period", created.Name())
	return period.ToResponse(created), nil
}

func (s *PeriodServiceImpl) GetDates(ctx context.Context, id string) (period.DatesResponse, error) {
	p, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return period.DatesResponse{}, err
	}
	return period.DatesResponse{
		Period: period.ToResponse(p),
		Dates:  p.Dates(),
	}, nil
}
