package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"golang.org/x/crypto/bcrypt"
)

// generated codes are retried this many times when a concurrent create takes
// the same sequence number
const maxCodeAttempts = 3

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        payroll.SummaryCache
	logger       *slog.Logger
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, cache payroll.SummaryCache, logger *slog.Logger) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		cache:        cache,
		logger:       logger,
	}
}

// invalidateSummaries drops every cached report: rates, buckets and the
// active flag of an employee feed all periods.
func (s *EmployeeServiceImpl) invalidateSummaries(ctx context.Context, employeeID string) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("summary cache invalidation failed", "employee_id", employeeID, "error", err)
	}
}

// Rate implements employee.RateRegistry.
func (s *EmployeeServiceImpl) Rate(ctx context.Context, employeeID string) (employee.RateInfo, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.RateInfo{}, err
	}
	if !emp.IsActive {
		return employee.RateInfo{}, employee.ErrEmployeeNotFound
	}
	return emp.Rate()
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.NewFromRequest(req)
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		newEmployee.PasswordHash = &hashed
	}

	generate := req.EmployeeCode == ""
	for attempt := 1; ; attempt++ {
		if generate {
			seq, err := s.employeeRepo.NextCodeSequence(ctx)
			if err != nil {
				return employee.EmployeeResponse{}, err
			}
			newEmployee.EmployeeCode = fmt.Sprintf("EMP-%03d", seq)
		}

		created, err := s.employeeRepo.Create(ctx, newEmployee)
		if errors.Is(err, employee.ErrEmployeeCodeExists) && generate && attempt < maxCodeAttempts {
			continue
		}
		if err != nil {
			return employee.EmployeeResponse{}, err
		}

		s.invalidateSummaries(ctx, created.ID)
		s.logger.Info("employee created", "employee_id", created.ID, "code", created.EmployeeCode, "department", created.Department)
		return employee.ToResponse(created), nil
	}
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	merged, err := req.Apply(existing)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, merged)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	s.invalidateSummaries(ctx, updated.ID)
	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, id)
	s.logger.Info("employee deactivated", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) ListByDepartment(ctx context.Context) (employee.DepartmentGroupsResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(employee.DepartmentGroupsResponse, len(employee.Buckets))
	for _, b := range employee.Buckets {
		groups[b] = []employee.EmployeeResponse{}
	}
	for _, e := range employees {
		bucket, ok := employee.BucketFor(string(e.Department))
		if !ok {
			continue
		}
		groups[bucket] = append(groups[bucket], employee.ToResponse(e))
	}
	return groups, nil
}

func (s *EmployeeServiceImpl) GetStats(ctx context.Context) (employee.StatsResponse, error) {
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return employee.StatsResponse{}, err
	}

	stats := employee.StatsResponse{
		ByDepartment: make(map[employee.Department]int),
		ByRateType:   make(map[employee.PayBasis]int),
	}
	for _, e := range employees {
		stats.Total++
		if !e.IsActive {
			stats.Inactive++
			continue
		}
		stats.Active++
		stats.ByDepartment[e.Department]++
		stats.ByRateType[e.RateType]++
	}
	return stats, nil
}

func (s *EmployeeServiceImpl) ResetPassword(ctx context.Context, req employee.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}
	if err := s.setPassword(ctx, req.EmployeeID, req.NewPassword); err != nil {
		return err
	}
	s.logger.Info("employee password reset", "employee_id", req.EmployeeID)
	return nil
}

func (s *EmployeeServiceImpl) UpdatePassword(ctx context.Context, req employee.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !emp.HasPassword() {
		return employee.ErrPasswordNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return employee.ErrInvalidPassword
	}
	return s.setPassword(ctx, emp.ID, req.NewPassword)
}

func (s *EmployeeServiceImpl) PasswordStatus(ctx context.Context, id string) (employee.PasswordStatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.PasswordStatusResponse{}, err
	}
	return employee.PasswordStatusResponse{EmployeeID: emp.ID, HasPassword: emp.HasPassword()}, nil
}

func (s *EmployeeServiceImpl) setPassword(ctx context.Context, id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.employeeRepo.SetPassword(ctx, id, string(hash))
}
