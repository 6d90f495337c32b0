package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Deactivate(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id string, passwordHash string) error
	// NextCodeSequence returns one past the highest numeric suffix among EMP-### codes.
	NextCodeSequence(ctx context.Context) (int, error)
}
