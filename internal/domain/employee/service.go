package employee

import "context"

// RateRegistry resolves an employee's pay basis and current rate.
// Inactive or unknown employees fail with ErrEmployeeNotFound.
type RateRegistry interface {
	Rate(ctx context.Context, employeeID string) (RateInfo, error)
}

type EmployeeService interface {
	RateRegistry

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// DeleteEmployee soft deletes by clearing the active flag.
	DeleteEmployee(ctx context.Context, id string) error
	ListByDepartment(ctx context.Context) (DepartmentGroupsResponse, error)
	GetStats(ctx context.Context) (StatsResponse, error)

	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	PasswordStatus(ctx context.Context, id string) (PasswordStatusResponse, error)
}
