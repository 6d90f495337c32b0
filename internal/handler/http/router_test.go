package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/payroll"
	periodService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/period"
	userService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin-password"
)

type testServer struct {
	handler    http.Handler
	jwtService jwt.Service
	store      *memory.Store
	employees  employee.EmployeeService
	period     period.Period
	employee   employee.Employee
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	jwtService := jwt.NewJWTService("test-secret", "1h")

	cache := payroll.NopCache{}
	employees := employeeService.NewEmployeeService(store.Employees(), cache, logger)
	users := userService.NewUserService(store.Users(), logger)

	_, err := users.EnsureAdmin(ctx, testAdminUsername, testAdminPassword)
	require.NoError(t, err)

	p, err := store.Periods().Create(ctx, period.Period{Year: 2024, Month: "March", StartDay: 1, EndDay: 5})
	require.NoError(t, err)
	rate := decimal.NewFromInt(500)
	emp, err := store.Employees().Create(ctx, employee.Employee{
		EmployeeCode: "EMP-001",
		Name:         "Ana",
		Department:   employee.DepartmentDriver,
		Position:     "Driver",
		RateType:     employee.PayBasisDaily,
		DailyRate:    &rate,
		IsActive:     true,
	})
	require.NoError(t, err)

	loginRate, err := limiter.NewRateFromFormatted("100-M")
	require.NoError(t, err)

	handlers := Handlers{
		Auth:     NewAuthHandler(authService.NewAuthService(store.Users(), store.Employees(), jwtService, logger)),
		User:     NewUserHandler(users),
		Employee: NewEmployeeHandler(employees),
		Period:   NewPeriodHandler(periodService.NewPeriodService(store.Periods(), logger)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(
			store.Attendance(), store.Employees(), store.Periods(), employees, cache, logger)),
		Payroll: NewPayrollHandler(payrollService.NewPayrollService(
			store.Transactor(), store.Attendance(), store.PayrollSummary(), store.Employees(), store.Periods(), employees, cache, logger)),
	}

	return &testServer{
		handler:    NewRouter(logger, RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, LoginRate: loginRate}, jwtService, handlers),
		jwtService: jwtService,
		store:      store,
		employees:  employees,
		period:     p,
		employee:   emp,
	}
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken("user-"+string(role), string(role), role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (s *testServer) saveDay(t *testing.T, token string, dayIndex int, in, out string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/attendance", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
		"day_index":         dayIndex,
		"time_in":           in,
		"time_out":          out,
		"status":            "present",
	})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, rec.Code, rec.Body.String())
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PermissionMatrix(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		role   user.Role
		method string
		path   string
		want   int
	}{
		{"pettycash reads employees", user.RolePettyCash, http.MethodGet, "/api/v1/employees", http.StatusOK},
		{"pettycash reads periods", user.RolePettyCash, http.MethodGet, "/api/v1/payroll/periods", http.StatusOK},
		{"pettycash cannot read attendance", user.RolePettyCash, http.MethodGet, "/api/v1/attendance?employee_id=x&payroll_period_id=y", http.StatusForbidden},
		{"pettycash cannot read summary", user.RolePettyCash, http.MethodGet, "/api/v1/payroll-summary?period_id=" + s.period.ID, http.StatusForbidden},
		{"pettycash cannot approve", user.RolePettyCash, http.MethodPut, "/api/v1/attendance/approve", http.StatusForbidden},
		{"payroll cannot manage users", user.RolePayroll, http.MethodGet, "/api/v1/users", http.StatusForbidden},
		{"admin manages users", user.RoleAdmin, http.MethodGet, "/api/v1/users", http.StatusOK},
		{"employee cannot list employees", user.RoleEmployee, http.MethodGet, "/api/v1/employees", http.StatusForbidden},
		{"payroll reads summary", user.RolePayroll, http.MethodGet, "/api/v1/payroll-summary?period_id=" + s.period.ID, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, s.token(t, tt.role), nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/payroll/periods", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceApprovalFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)

	s.saveDay(t, token, 1, "08:00", "17:00")
	s.saveDay(t, token, 3, "07:30", "16:30")

	var entries []map[string]any
	rec := s.do(t, http.MethodGet, "/api/v1/attendance?employee_id="+s.employee.ID+"&payroll_period_id="+s.period.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeEnvelope(t, rec, &entries)
	require.Len(t, entries, 2)

	rec = s.do(t, http.MethodGet, "/api/v1/can-edit/"+s.employee.ID+"/"+s.period.ID, token, nil)
	var canEdit payroll.CanEditResponse
	decodeEnvelope(t, rec, &canEdit)
	assert.True(t, canEdit.CanEdit)

	rec = s.do(t, http.MethodPut, "/api/v1/attendance/approve", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
		"sync_to_payroll":   true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved payroll.ApproveResponse
	decodeEnvelope(t, rec, &approved)
	assert.Equal(t, 2, approved.RecordsProcessed)
	assert.True(t, approved.SyncedToPayroll)

	// Nothing left to approve.
	rec = s.do(t, http.MethodPut, "/api/v1/attendance/approve", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/status?employee_id="+s.employee.ID+"&payroll_period_id="+s.period.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status payroll.ApprovalStatusResponse
	decodeEnvelope(t, rec, &status)
	assert.Equal(t, payroll.StateSynced, status.State)
	assert.Equal(t, 2, status.ApprovedDays)

	rec = s.do(t, http.MethodGet, "/api/v1/can-edit/"+s.employee.ID+"/"+s.period.ID, token, nil)
	decodeEnvelope(t, rec, &canEdit)
	assert.False(t, canEdit.CanEdit)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll-summary?period_id="+s.period.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		GrandTotal decimal.Decimal `json:"grand_total"`
	}
	decodeEnvelope(t, rec, &report)
	assert.True(t, decimal.NewFromInt(1000).Equal(report.GrandTotal), report.GrandTotal.String())

	rec = s.do(t, http.MethodPut, "/api/v1/attendance/unapprove", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var unapproved payroll.UnapproveResponse
	decodeEnvelope(t, rec, &unapproved)
	assert.EqualValues(t, 2, unapproved.RecordsUpdated)
	assert.Equal(t, 2, unapproved.SummaryRowsRetained)
}

func TestAttendance_SaveValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
		"day_index":         9,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec, nil)
	assert.False(t, env.Success)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	bad := httptest.NewRecorder()
	s.handler.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAttendance_DeleteDay(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)
	s.saveDay(t, token, 1, "08:00", "12:00")

	rec := s.do(t, http.MethodDelete, "/api/v1/attendance", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
		"day_index":         1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/v1/attendance?employee_id="+s.employee.ID+"&payroll_period_id="+s.period.ID+"&day_index=1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHardDeletes(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)
	s.saveDay(t, token, 1, "08:00", "17:00")
	rec := s.do(t, http.MethodPut, "/api/v1/attendance/approve", token, map[string]any{
		"employee_id":       s.employee.ID,
		"payroll_period_id": s.period.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/payroll-summary/employee/"+s.employee.ID+"/period/"+s.period.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		AffectedRows int64 `json:"affected_rows"`
	}
	decodeEnvelope(t, rec, &deleted)
	assert.EqualValues(t, 1, deleted.AffectedRows)

	rec = s.do(t, http.MethodDelete, "/api/v1/attendance-records/employee/"+s.employee.ID+"/period/"+s.period.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeEnvelope(t, rec, &deleted)
	assert.EqualValues(t, 1, deleted.AffectedRows)
}

func TestPayroll_ExportCSV(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)
	s.saveDay(t, token, 1, "08:00", "17:00")

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/periods/"+s.period.ID+"/export/csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "employee_id,name,department,position,rate,period,days_present,total_earnings")
	assert.Contains(t, rec.Body.String(), "EMP-001,Ana,DRIVER")

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/periods/missing/export/csv", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestPeriods(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/periods", token, map[string]any{
		"year": 2024, "month": "march", "start_day": 6, "end_day": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created period.PeriodResponse
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "March", created.Month)
	assert.Equal(t, "March 6-15, 2024", created.PeriodName)

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/periods", token, map[string]any{
		"year": 2024, "month": "March", "start_day": 4, "end_day": 8,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/periods/"+s.period.ID+"/dates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dates period.DatesResponse
	decodeEnvelope(t, rec, &dates)
	assert.Len(t, dates.Dates, 5)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/periods", s.token(t, user.RolePettyCash), nil)
	var periods []period.PeriodResponse
	decodeEnvelope(t, rec, &periods)
	assert.Len(t, periods, 2)
}

func TestEmployees(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RolePayroll)

	rec := s.do(t, http.MethodPost, "/api/v1/employees", token, map[string]any{
		"name":       "Budi",
		"department": "warehouse",
		"position":   "Loader",
		"rate_type":  "daily",
		"daily_rate": "350",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created employee.EmployeeResponse
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "EMP-002", created.EmployeeCode)
	assert.Equal(t, employee.DepartmentWarehouse, created.Department)

	rec = s.do(t, http.MethodGet, "/api/v1/employees?department=WAREHOUSE", token, nil)
	var list []employee.EmployeeResponse
	decodeEnvelope(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/employees?active=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/stats", token, nil)
	var stats employee.StatsResponse
	decodeEnvelope(t, rec, &stats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/employees/department", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups map[string][]employee.EmployeeResponse
	decodeEnvelope(t, rec, &groups)
	assert.Len(t, groups, 4)
}
