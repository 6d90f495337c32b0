package attendance

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	periodRepo     period.PeriodRepository
	rates          employee.RateRegistry
	cache          payroll.SummaryCache
	logger         *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PeriodRepository,
	rates employee.RateRegistry,
	cache payroll.SummaryCache,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		periodRepo:     periodRepo,
		rates:          rates,
		cache:          cache,
		logger:         logger,
	}
}

// SaveAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SaveAttendance(ctx context.Context, req attendance.SaveAttendanceRequest) (attendance.SaveAttendanceResponse, error) {
	// 1. Validate request
	if err := req.Validate(); err != nil {
		return attendance.SaveAttendanceResponse{}, err
	}

	// 2. Resolve the calendar day
	p, err := s.periodRepo.GetByID(ctx, req.PeriodID)
	if err != nil {
		return attendance.SaveAttendanceResponse{}, err
	}
	day, err := p.Day(req.DayIndex)
	if err != nil {
		return attendance.SaveAttendanceResponse{}, err
	}
	if req.Date != "" {
		if date, _ := validator.IsValidDate(req.Date); !date.Equal(day.Time) {
			return attendance.SaveAttendanceResponse{}, attendance.ErrDateMismatch
		}
	}

	// 3. Normalise against the employee's rate
	rate, err := s.rates.Rate(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SaveAttendanceResponse{}, err
	}
	in := req.SaveInput()
	status, amount := attendance.NormalizeSave(in, rate)

	workingHours := decimal.Zero
	if req.WorkingHours != nil {
		workingHours = *req.WorkingHours
	}

	// 4. Upsert, which always clears approval
	saved, created, err := s.attendanceRepo.Upsert(ctx, attendance.Entry{
		EmployeeID:   req.EmployeeID,
		PeriodID:     req.PeriodID,
		DayIndex:     req.DayIndex,
		Date:         day.Time,
		TimeIn:       in.TimeIn,
		TimeOut:      in.TimeOut,
		WorkingHours: workingHours,
		Status:       status,
		Amount:       amount,
		IsWeekend:    day.IsWeekend,
	})
	if err != nil {
		return attendance.SaveAttendanceResponse{}, err
	}
	s.invalidate(ctx, req.PeriodID)

	return attendance.SaveAttendanceResponse{
		Created:    created,
		Updated:    !created,
		Attendance: attendance.ToResponse(saved, attendance.ClassifyStored(saved, rate)),
	}, nil
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, req attendance.PairRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.periodRepo.GetByID(ctx, req.PeriodID); err != nil {
		return nil, err
	}

	entries, err := s.attendanceRepo.ListByEmployeePeriod(ctx, req.EmployeeID, req.PeriodID)
	if err != nil {
		return nil, err
	}

	rate := displayRate(emp)
	resp := make([]attendance.AttendanceResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, attendance.ToResponse(e, attendance.ClassifyStored(e, rate)))
	}
	return resp, nil
}

// GetPeriodAttendance returns every entry of a period grouped per employee.
func (s *AttendanceServiceImpl) GetPeriodAttendance(ctx context.Context, periodID string) (attendance.PeriodAttendanceResponse, error) {
	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return attendance.PeriodAttendanceResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return attendance.PeriodAttendanceResponse{}, err
	}
	rates := make(map[string]employee.RateInfo, len(employees))
	for _, e := range employees {
		rates[e.ID] = displayRate(e)
	}

	entries, err := s.attendanceRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return attendance.PeriodAttendanceResponse{}, err
	}

	resp := attendance.PeriodAttendanceResponse{
		Period:    period.ToResponse(p),
		Dates:     p.Dates(),
		Employees: []attendance.EmployeeAttendance{},
	}
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.EmployeeID]
		if !ok {
			i = len(resp.Employees)
			index[e.EmployeeID] = i
			resp.Employees = append(resp.Employees, attendance.EmployeeAttendance{EmployeeID: e.EmployeeID})
		}
		resp.Employees[i].Entries = append(resp.Employees[i].Entries, attendance.ToResponse(e, attendance.ClassifyStored(e, rates[e.EmployeeID])))
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) DeleteDay(ctx context.Context, req attendance.PairRequest) (attendance.DeleteResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DeleteResponse{}, err
	}
	if req.DayIndex == nil {
		var errs validator.ValidationErrors
		errs.Add("day_index", "day_index is required")
		return attendance.DeleteResponse{}, errs
	}

	n, err := s.attendanceRepo.Delete(ctx, req.EmployeeID, req.PeriodID, req.DayIndex)
	if err != nil {
		return attendance.DeleteResponse{}, err
	}
	if n == 0 {
		return attendance.DeleteResponse{}, attendance.ErrAttendanceNotFound
	}
	s.invalidate(ctx, req.PeriodID)
	return attendance.DeleteResponse{AffectedRows: n}, nil
}

func (s *AttendanceServiceImpl) DeleteRecords(ctx context.Context, req attendance.PairRequest) (attendance.DeleteResponse, error) {
	req.DayIndex = nil
	if err := req.Validate(); err != nil {
		return attendance.DeleteResponse{}, err
	}

	n, err := s.attendanceRepo.Delete(ctx, req.EmployeeID, req.PeriodID, nil)
	if err != nil {
		return attendance.DeleteResponse{}, err
	}
	s.invalidate(ctx, req.PeriodID)

	s.logger.Info("attendance records deleted",
		"employee_id", req.EmployeeID,
		"period_id", req.PeriodID,
		"affected_rows", n,
	)
	return attendance.DeleteResponse{AffectedRows: n}, nil
}

func (s *AttendanceServiceImpl) invalidate(ctx context.Context, periodID string) {
	if err := s.cache.Invalidate(ctx, periodID); err != nil {
		s.logger.Warn("summary cache invalidation failed", "period_id", periodID, "error", err)
	}
}

// displayRate tolerates a misconfigured rate so read views still render.
func displayRate(e employee.Employee) employee.RateInfo {
	rate, err := e.Rate()
	if err != nil {
		return employee.RateInfo{Basis: e.RateType, Amount: decimal.Zero}
	}
	return rate
}
