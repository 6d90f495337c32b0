package payroll

import "context"

// SummaryCache stores built period reports. Implementations must treat a
// miss and a backend failure alike from the caller's point of view: the
// report is rebuilt from the store.
type SummaryCache interface {
	Get(ctx context.Context, periodID string) (SummaryReport, bool, error)
	Set(ctx context.Context, periodID string, report SummaryReport) error
	Invalidate(ctx context.Context, periodID string) error
	// InvalidateAll drops every cached period, for writes such as employee
	// changes that can alter any report.
	InvalidateAll(ctx context.Context) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (SummaryReport, bool, error) {
	return SummaryReport{}, false, nil
}

func (NopCache) Set(context.Context, string, SummaryReport) error { return nil }

func (NopCache) Invalidate(context.Context, string) error { return nil }

func (NopCache) InvalidateAll(context.Context) error { return nil }
