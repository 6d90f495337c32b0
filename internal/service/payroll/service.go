package payroll

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	summaryRepo    payroll.SummaryRepository
	employeeRepo   employee.EmployeeRepository
	periodRepo     period.PeriodRepository
	rates          employee.RateRegistry
	cache          payroll.SummaryCache
	logger         *slog.Logger
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo payroll.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PeriodRepository,
	rates employee.RateRegistry,
	cache payroll.SummaryCache,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		summaryRepo:    summaryRepo,
		employeeRepo:   employeeRepo,
		periodRepo:     periodRepo,
		rates:          rates,
		cache:          cache,
		logger:         logger,
		now:            time.Now,
	}
}

// ========== APPROVAL ==========

func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApproveRequest) (payroll.ApproveResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ApproveResponse{}, err
	}

	if _, err := s.periodRepo.GetByID(ctx, req.PeriodID); err != nil {
		return payroll.ApproveResponse{}, err
	}
	rate, err := s.rates.Rate(ctx, req.EmployeeID)
	if err != nil {
		return payroll.ApproveResponse{}, err
	}

	approvedAt := s.now().UTC()
	resp := payroll.ApproveResponse{
		EmployeeID:      req.EmployeeID,
		PeriodID:        req.PeriodID,
		SyncedToPayroll: req.Sync(),
		ApprovedAt:      approvedAt,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Select and lock the days this approval covers
		rows, err := s.attendanceRepo.ListForApproval(ctx, req.EmployeeID, req.PeriodID, req.ForceResync)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return payroll.ErrNoPendingAttendance
		}

		// 2. Classify every selected day
		indices := make([]int, 0, len(rows))
		outcomes := make([]attendance.DayOutcome, 0, len(rows))
		for _, row := range rows {
			outcome := attendance.Classify(row.Raw(), rate)
			indices = append(indices, row.DayIndex)
			outcomes = append(outcomes, outcome)
			resp.Days = append(resp.Days, payroll.ApprovedDay{
				DayIndex: row.DayIndex,
				Status:   outcome.Status(),
				Amount:   outcome.Amount,
				Outcome:  outcome,
			})
		}

		// 3. Flag them approved
		if _, err := s.attendanceRepo.SetApproval(ctx, req.EmployeeID, req.PeriodID, indices, true, approvedAt); err != nil {
			return fmt.Errorf("set approval: %w", err)
		}

		// 4. Freeze them into the payroll summary
		if !req.Sync() {
			return nil
		}
		for i, row := range rows {
			if err := s.summaryRepo.Upsert(ctx, payroll.NewSummaryEntry(row, outcomes[i], approvedAt)); err != nil {
				return fmt.Errorf("upsert payroll summary day %d: %w", row.DayIndex, err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.ApproveResponse{}, txError(err)
	}
	s.invalidate(ctx, req.PeriodID)

	resp.RecordsProcessed = len(resp.Days)
	s.logger.Info("attendance approved",
		"employee_id", req.EmployeeID,
		"period_id", req.PeriodID,
		"records", resp.RecordsProcessed,
		"synced", resp.SyncedToPayroll,
		"force_resync", req.ForceResync,
	)
	return resp, nil
}

// BulkApprove approves each employee in its own transaction; one failure
// does not roll back the others.
func (s *PayrollServiceImpl) BulkApprove(ctx context.Context, req payroll.BulkApproveRequest) (payroll.BulkApproveResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkApproveResponse{}, err
	}

	resp := payroll.BulkApproveResponse{Results: make([]payroll.BulkApproveResult, 0, len(req.EmployeeIDs))}
	for _, employeeID := range req.EmployeeIDs {
		approved, err := s.Approve(ctx, payroll.ApproveRequest{
			EmployeeID:    employeeID,
			PeriodID:      req.PeriodID,
			SyncToPayroll: req.SyncToPayroll,
			ForceResync:   req.ForceResync,
		})
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, payroll.BulkApproveResult{
				EmployeeID: employeeID,
				Message:    err.Error(),
			})
			continue
		}
		resp.Succeeded++
		resp.Results = append(resp.Results, payroll.BulkApproveResult{
			EmployeeID:       employeeID,
			Success:          true,
			Message:          fmt.Sprintf("approved %d records", approved.RecordsProcessed),
			RecordsProcessed: approved.RecordsProcessed,
		})
	}

	s.logger.Info("bulk approval finished",
		"period_id", req.PeriodID,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
	return resp, nil
}

// Unapprove clears the approval flags of every day of the pair. Summary rows
// written by earlier approvals stay in place and are reported back.
func (s *PayrollServiceImpl) Unapprove(ctx context.Context, req attendance.PairRequest) (payroll.UnapproveResponse, error) {
	req.DayIndex = nil
	if err := req.Validate(); err != nil {
		return payroll.UnapproveResponse{}, err
	}

	resp := payroll.UnapproveResponse{EmployeeID: req.EmployeeID, PeriodID: req.PeriodID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.attendanceRepo.SetApproval(ctx, req.EmployeeID, req.PeriodID, nil, false, time.Time{})
		if err != nil {
			return fmt.Errorf("clear approval: %w", err)
		}
		retained, _, err := s.summaryRepo.Count(ctx, req.EmployeeID, req.PeriodID)
		if err != nil {
			return fmt.Errorf("count payroll summary: %w", err)
		}
		resp.RecordsUpdated = n
		resp.SummaryRowsRetained = retained
		return nil
	})
	if err != nil {
		return payroll.UnapproveResponse{}, txError(err)
	}
	s.invalidate(ctx, req.PeriodID)

	s.logger.Info("attendance unapproved",
		"employee_id", req.EmployeeID,
		"period_id", req.PeriodID,
		"records", resp.RecordsUpdated,
		"summary_rows_retained", resp.SummaryRowsRetained,
	)
	return resp, nil
}

func (s *PayrollServiceImpl) CanEdit(ctx context.Context, req attendance.PairRequest) (payroll.CanEditResponse, error) {
	snap, err := s.snapshot(ctx, req)
	if err != nil {
		return payroll.CanEditResponse{}, err
	}
	return payroll.CanEditResponse{
		CanEdit:       snap.CanEdit(),
		ApprovedCount: snap.ApprovedDays,
		PayrollCount:  snap.SummaryRows,
	}, nil
}

func (s *PayrollServiceImpl) ApprovalStatus(ctx context.Context, req attendance.PairRequest) (payroll.ApprovalStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ApprovalStatusResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.ApprovalStatusResponse{}, err
	}
	if _, err := s.periodRepo.GetByID(ctx, req.PeriodID); err != nil {
		return payroll.ApprovalStatusResponse{}, err
	}

	snap, err := s.snapshot(ctx, req)
	if err != nil {
		return payroll.ApprovalStatusResponse{}, err
	}
	return payroll.ToStatusResponse(req.EmployeeID, req.PeriodID, snap), nil
}

func (s *PayrollServiceImpl) snapshot(ctx context.Context, req attendance.PairRequest) (payroll.ApprovalSnapshot, error) {
	req.DayIndex = nil
	if err := req.Validate(); err != nil {
		return payroll.ApprovalSnapshot{}, err
	}

	counts, err := s.attendanceRepo.CountApproval(ctx, req.EmployeeID, req.PeriodID)
	if err != nil {
		return payroll.ApprovalSnapshot{}, err
	}
	rows, lastSync, err := s.summaryRepo.Count(ctx, req.EmployeeID, req.PeriodID)
	if err != nil {
		return payroll.ApprovalSnapshot{}, err
	}
	return payroll.ApprovalSnapshot{
		TotalDays:       counts.TotalDays,
		ApprovedDays:    counts.ApprovedDays,
		SummaryRows:     rows,
		FirstApprovedAt: counts.FirstApprovedAt,
		LastApprovedAt:  counts.LastApprovedAt,
		LastSyncedAt:    lastSync,
	}, nil
}

// ========== REPORTING ==========

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, periodID string) (payroll.SummaryReport, error) {
	report, ok, err := s.cache.Get(ctx, periodID)
	if err != nil {
		s.logger.Warn("summary cache read failed", "period_id", periodID, "error", err)
	}
	if ok {
		return report, nil
	}
	return s.RefreshSummary(ctx, periodID)
}

// RefreshSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) RefreshSummary(ctx context.Context, periodID string) (payroll.SummaryReport, error) {
	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.SummaryReport{}, err
	}
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.SummaryReport{}, err
	}
	entries, err := s.attendanceRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return payroll.SummaryReport{}, err
	}
	summary, err := s.summaryRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return payroll.SummaryReport{}, err
	}

	report := payroll.BuildReport(payroll.ReportInput{
		Period:     p,
		Employees:  employees,
		Attendance: entries,
		Summary:    summary,
	})
	if err := s.cache.Set(ctx, periodID, report); err != nil {
		s.logger.Warn("summary cache write failed", "period_id", periodID, "error", err)
	}
	return report, nil
}

func (s *PayrollServiceImpl) GetDailyTotals(ctx context.Context, periodID string) (payroll.DailyTotalsResponse, error) {
	report, err := s.GetSummary(ctx, periodID)
	if err != nil {
		return payroll.DailyTotalsResponse{}, err
	}
	return payroll.DailyTotalsResponse{
		Period:      report.Period,
		Dates:       report.Dates,
		DailyTotals: report.DailyTotals,
		GrandTotal:  report.GrandTotal,
	}, nil
}

var csvHeader = []string{"employee_id", "name", "department", "position", "rate", "period", "days_present", "total_earnings"}

// ExportCSV writes one line per grouped employee of the period summary.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, periodID string, w io.Writer) error {
	report, err := s.GetSummary(ctx, periodID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range report.Rows() {
		record := []string{
			row.EmployeeCode,
			row.Name,
			string(row.Department),
			row.Position,
			row.Rate.StringFixed(2),
			report.Period.PeriodName,
			strconv.Itoa(row.WorkingDays),
			row.GrossSalary.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DeleteSummary removes the pair's summary rows regardless of approval state.
func (s *PayrollServiceImpl) DeleteSummary(ctx context.Context, req attendance.PairRequest) (attendance.DeleteResponse, error) {
	req.DayIndex = nil
	if err := req.Validate(); err != nil {
		return attendance.DeleteResponse{}, err
	}

	n, err := s.summaryRepo.DeleteByEmployeePeriod(ctx, req.EmployeeID, req.PeriodID)
	if err != nil {
		return attendance.DeleteResponse{}, err
	}
	s.invalidate(ctx, req.PeriodID)

	s.logger.Info("payroll summary deleted",
		"employee_id", req.EmployeeID,
		"period_id", req.PeriodID,
		"affected_rows", n,
	)
	return attendance.DeleteResponse{AffectedRows: n}, nil
}

func (s *PayrollServiceImpl) invalidate(ctx context.Context, periodID string) {
	if err := s.cache.Invalidate(ctx, periodID); err != nil {
		s.logger.Warn("summary cache invalidation failed", "period_id", periodID, "error", err)
	}
}

// txError tags store failures inside an approval batch as a failed
// transaction; an empty selection passes through unchanged.
func txError(err error) error {
	if errors.Is(err, payroll.ErrNoPendingAttendance) {
		return err
	}
	return database.TransactionFailed(err)
}
