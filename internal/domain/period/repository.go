package period

import "context"

type PeriodRepository interface {
	Create(ctx context.Context, p Period) (Period, error)
	GetByID(ctx context.Context, id string) (Period, error)
	List(ctx context.Context) ([]Period, error)
	ListByMonth(ctx context.Context, year int, month string) ([]Period, error)
}
