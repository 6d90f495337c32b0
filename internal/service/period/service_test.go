package period

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *PeriodServiceImpl {
	store := memory.NewStore()
	svc := NewPeriodService(store.Periods(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*PeriodServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreatePeriod(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())

	created, err := svc.CreatePeriod(ctx, period.CreatePeriodRequest{Year: 2024, Month: "march", StartDay: 1, EndDay: 15})
	require.NoError(t, err)
	assert.Equal(t, "March", created.Month)
	assert.Equal(t, "March 1-15, 2024", created.PeriodName)
	assert.Equal(t, 15, created.DayCount)

	_, err = svc.CreatePeriod(ctx, period.CreatePeriodRequest{Year: 2024, Month: "March", StartDay: 10, EndDay: 20})
	assert.ErrorIs(t, err, period.ErrPeriodOverlap)

	_, err = svc.CreatePeriod(ctx, period.CreatePeriodRequest{Year: 2024, Month: "March", StartDay: 16, EndDay: 31})
	assert.NoError(t, err)
}

func TestCreatePeriod_Invalid(t *testing.T) {
	svc := newTestService(time.Now())

	tests := []struct {
		name  string
		req   period.CreatePeriodRequest
		field string
	}{
		{name: "unknown month", req: period.CreatePeriodRequest{Year: 2024, Month: "Smarch", StartDay: 1, EndDay: 2}, field: "month"},
		{name: "end before start", req: period.CreatePeriodRequest{Year: 2024, Month: "May", StartDay: 10, EndDay: 2}, field: "end_day"},
		{name: "past month end", req: period.CreatePeriodRequest{Year: 2023, Month: "February", StartDay: 16, EndDay: 29}, field: "end_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePeriod(context.Background(), tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestGetCurrentPeriod(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Date(2024, time.March, 18, 10, 0, 0, 0, time.UTC))

	_, err := svc.GetCurrentPeriod(ctx)
	assert.ErrorIs(t, err, period.ErrNoCurrentPeriod)

	_, err = svc.CreatePeriod(ctx, period.CreatePeriodRequest{Year: 2024, Month: "March", StartDay: 1, EndDay: 15})
	require.NoError(t, err)
	second, err := svc.CreatePeriod(ctx, period.CreatePeriodRequest{Year: 2024, Month: "March", StartDay: 16, EndDay: 31})
	require.NoError(t, err)

	current, err := svc.GetCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestListAndDates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())

	for _, req := range []period.CreatePeriodRequest{
		{Year: 2024, Month: "April", StartDay: 1, EndDay: 15},
		{Year: 2024, Month: "March", StartDay: 16, EndDay: 31},
		{Year: 2024, Month: "March", StartDay: 1, EndDay: 15},
	} {
		_, err := svc.CreatePeriod(ctx, req)
		require.NoError(t, err)
	}

	list, err := svc.ListPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "March 1-15, 2024", list[0].PeriodName)
	assert.Equal(t, "April 1-15, 2024", list[2].PeriodName)

	dates, err := svc.GetDates(ctx, list[1].ID)
	require.NoError(t, err)
	require.Len(t, dates.Dates, 16)
	assert.Equal(t, 16, dates.Dates[0].DayOfMonth)
	assert.Equal(t, "2024-03-31", dates.Dates[15].FullDate)

	_, err = svc.GetDates(ctx, "missing")
	assert.ErrorIs(t, err, period.ErrPeriodNotFound)
}
