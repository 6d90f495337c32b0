// Package memory is an in-process implementation of every repository
// contract. It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
)

type dayKey struct {
	employeeID string
	periodID   string
	dayIndex   int
}

type tables struct {
	employees  map[string]employee.Employee
	periods    map[string]period.Period
	attendance map[dayKey]attendance.Entry
	summary    map[dayKey]payroll.SummaryEntry
	users      map[string]user.User
}

func (t tables) clone() tables {
	return tables{
		employees:  maps.Clone(t.employees),
		periods:    maps.Clone(t.periods),
		attendance: maps.Clone(t.attendance),
		summary:    maps.Clone(t.summary),
		users:      maps.Clone(t.users),
	}
}

// Store holds all tables behind one mutex. A transaction holds the mutex for
// its whole duration, so transactions are serialised and a failed one is
// rolled back by restoring the snapshot taken when it began.
type Store struct {
	mu   sync.Mutex
	data tables
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: tables{
			employees:  make(map[string]employee.Employee),
			periods:    make(map[string]period.Period),
			attendance: make(map[dayKey]attendance.Entry),
			summary:    make(map[dayKey]payroll.SummaryEntry),
			users:      make(map[string]user.User),
		},
		now: time.Now,
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock guards a single repository call. Inside a transaction the mutex is
// already held by the caller.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
	}
	return err
}

func (s *Store) Transactor() database.Transactor             { return s }
func (s *Store) Employees() employee.EmployeeRepository      { return &employeeRepo{s: s} }
func (s *Store) Periods() period.PeriodRepository            { return &periodRepo{s: s} }
func (s *Store) Attendance() attendance.AttendanceRepository { return &attendanceRepo{s: s} }
func (s *Store) PayrollSummary() payroll.SummaryRepository   { return &summaryRepo{s: s} }
func (s *Store) Users() user.UserRepository                  { return &userRepo{s: s} }

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
