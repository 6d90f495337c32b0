package period

import "context"

type PeriodService interface {
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	GetCurrentPeriod(ctx context.Context) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetDates(ctx context.Context, id string) (DatesResponse, error)
}
