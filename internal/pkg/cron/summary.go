package cron

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
)

// WarmCurrentSummary rebuilds the payroll summary of the period covering today
// into the summary cache on every run. No current period is not an error.
func WarmCurrentSummary(periods period.PeriodService, summaries payroll.PayrollService) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		current, err := periods.GetCurrentPeriod(ctx)
		if errors.Is(err, period.ErrNoCurrentPeriod) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = summaries.RefreshSummary(ctx, current.ID)
		return err
	}
}
