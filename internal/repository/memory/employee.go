package memory

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
)

type employeeRepo struct {
	s *Store
}

func (r *employeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.data.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if e.ID == "" {
		id, err := newID()
		if err != nil {
			return employee.Employee{}, err
		}
		e.ID = id
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	for _, e := range r.s.data.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	defer r.s.lock(ctx)()

	search := strings.ToLower(filter.Search)
	var out []employee.Employee
	for _, e := range r.s.data.employees {
		if filter.Department != "" && !strings.EqualFold(string(e.Department), filter.Department) {
			continue
		}
		if filter.Active != nil && e.IsActive != *filter.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.EmployeeCode), search) &&
			!strings.Contains(strings.ToLower(e.Position), search) {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return strings.Compare(a.EmployeeCode, b.EmployeeCode)
	})
	return out, nil
}

func (r *employeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	defer r.s.lock(ctx)()

	var out []employee.Employee
	for _, e := range r.s.data.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		if c := strings.Compare(string(a.Department), string(b.Department)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (r *employeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	existing.Name = e.Name
	existing.Department = e.Department
	existing.Position = e.Position
	existing.RateType = e.RateType
	existing.DailyRate = e.DailyRate
	existing.FixedRate = e.FixedRate
	existing.IsActive = e.IsActive
	existing.UpdatedAt = r.s.now()
	r.s.data.employees[e.ID] = existing
	return existing, nil
}

func (r *employeeRepo) Deactivate(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = false
	e.UpdatedAt = r.s.now()
	r.s.data.employees[id] = e
	return nil
}

func (r *employeeRepo) SetPassword(ctx context.Context, id string, passwordHash string) error {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.PasswordHash = &passwordHash
	e.UpdatedAt = r.s.now()
	r.s.data.employees[id] = e
	return nil
}

var codePattern = regexp.MustCompile(`^EMP-(\d+)$`)

func (r *employeeRepo) NextCodeSequence(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()

	highest := 0
	for _, e := range r.s.data.employees {
		m := codePattern.FindStringSubmatch(e.EmployeeCode)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}
