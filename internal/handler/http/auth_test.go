package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) login(t *testing.T, username, password string) auth.TokenResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens auth.TokenResponse
	decodeEnvelope(t, rec, &tokens)
	return tokens
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	tokens := s.login(t, testAdminUsername, testAdminPassword)
	assert.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, user.RoleAdmin, tokens.User.Role)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testAdminUsername,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": testAdminUsername})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMeAndLogout(t *testing.T) {
	s := newTestServer(t)
	tokens := s.login(t, testAdminUsername, testAdminPassword)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me auth.MeResponse
	decodeEnvelope(t, rec, &me)
	assert.Equal(t, user.RoleAdmin, me.Role)
	require.NotNil(t, me.User)
	assert.Equal(t, testAdminUsername, me.User.Username)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeSelfService(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, user.RolePayroll)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login/employee-code", "", map[string]string{
		"employee_id": "EMP-001",
		"password":    "first-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "password not set yet")

	rec = s.do(t, http.MethodPost, "/api/v1/employees/reset-password", staff, map[string]string{
		"employee_id":  s.employee.ID,
		"new_password": "first-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/employees/"+s.employee.ID+"/check-password", staff, nil)
	var status employee.PasswordStatusResponse
	decodeEnvelope(t, rec, &status)
	assert.True(t, status.HasPassword)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login/employee-code", "", map[string]string{
		"employee_id": "EMP-001",
		"password":    "first-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens auth.TokenResponse
	decodeEnvelope(t, rec, &tokens)
	require.NotNil(t, tokens.Employee)
	assert.Equal(t, s.employee.ID, tokens.Employee.ID)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	var me auth.MeResponse
	decodeEnvelope(t, rec, &me)
	assert.Equal(t, user.RoleEmployee, me.Role)
	require.NotNil(t, me.Employee)

	rec = s.do(t, http.MethodPost, "/api/v1/employees/update-password", tokens.AccessToken, map[string]string{
		"current_password": "wrong-password",
		"new_password":     "second-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/employees/update-password", tokens.AccessToken, map[string]string{
		"current_password": "first-password",
		"new_password":     "second-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Staff tokens cannot use the self-service route.
	rec = s.do(t, http.MethodPost, "/api/v1/employees/update-password", staff, map[string]string{
		"current_password": "second-password",
		"new_password":     "third-password",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserManagement(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, testAdminUsername, testAdminPassword)

	rec := s.do(t, http.MethodPost, "/api/v1/users", admin.AccessToken, map[string]string{
		"username": "clerk",
		"email":    "clerk@example.com",
		"password": "clerk-password",
		"role":     "payroll",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created user.UserResponse
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, user.RolePayroll, created.Role)

	rec = s.do(t, http.MethodPost, "/api/v1/users", admin.AccessToken, map[string]string{
		"username": "CLERK",
		"email":    "other@example.com",
		"password": "clerk-password",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	inactive := false
	rec = s.do(t, http.MethodPut, "/api/v1/users/"+created.ID, admin.AccessToken, map[string]any{"is_active": inactive})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "clerk",
		"password": "clerk-password",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/users/"+admin.User.ID, admin.AccessToken, map[string]any{"role": "pettycash"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/users", admin.AccessToken, nil)
	var users []user.UserResponse
	decodeEnvelope(t, rec, &users)
	assert.Len(t, users, 2)

	found, err := s.store.Users().GetByUsername(context.Background(), "clerk")
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
