package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type authEnv struct {
	store *memory.Store
	jwt   jwt.Service
	svc   auth.AuthService
}

func newAuthEnv(t *testing.T) authEnv {
	t.Helper()
	store := memory.NewStore()
	jwtService := jwt.NewJWTService(testSecret, "1h")
	svc := NewAuthService(store.Users(), store.Employees(), jwtService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return authEnv{store: store, jwt: jwtService, svc: svc}
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func (e authEnv) createUser(t *testing.T, username string, active bool) user.User {
	t.Helper()
	u, err := e.store.Users().Create(context.Background(), user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash(t, "password123"),
		Role:         user.RolePayroll,
		IsActive:     active,
	})
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newAuthEnv(t)
	created := env.createUser(t, "payroll1", true)

	resp, err := env.svc.Login(ctx, auth.LoginRequest{Username: "PAYROLL1", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLogin)

	token, err := env.jwt.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	role, _ := token.Get("role")
	assert.Equal(t, "payroll", role)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	env := newAuthEnv(t)
	env.createUser(t, "active", true)
	env.createUser(t, "retired", false)

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{name: "unknown user", req: auth.LoginRequest{Username: "ghost", Password: "password123"}, wantErr: auth.ErrInvalidCredentials},
		{name: "wrong password", req: auth.LoginRequest{Username: "active", Password: "nope"}, wantErr: auth.ErrInvalidCredentials},
		{name: "inactive", req: auth.LoginRequest{Username: "retired", Password: "password123"}, wantErr: auth.ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoginWithEmployeeCode(t *testing.T) {
	ctx := context.Background()
	env := newAuthEnv(t)

	rate := decimal.NewFromInt(500)
	passwordHash := hash(t, "secret1")
	emp, err := env.store.Employees().Create(ctx, employee.Employee{
		EmployeeCode: "EMP-001",
		Name:         "Ana",
		Department:   employee.DepartmentOffice,
		RateType:     employee.PayBasisDaily,
		DailyRate:    &rate,
		IsActive:     true,
		PasswordHash: &passwordHash,
	})
	require.NoError(t, err)
	_, err = env.store.Employees().Create(ctx, employee.Employee{EmployeeCode: "EMP-002", Name: "Ben", IsActive: true})
	require.NoError(t, err)

	resp, err := env.svc.LoginWithEmployeeCode(ctx, auth.LoginEmployeeCodeRequest{EmployeeCode: "EMP-001", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Employee)
	assert.Equal(t, emp.ID, resp.Employee.ID)

	me, err := env.svc.Me(ctx, auth.Principal{ID: emp.ID, Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, me.Role)
	assert.Nil(t, me.User)

	_, err = env.svc.LoginWithEmployeeCode(ctx, auth.LoginEmployeeCodeRequest{EmployeeCode: "EMP-001", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = env.svc.LoginWithEmployeeCode(ctx, auth.LoginEmployeeCodeRequest{EmployeeCode: "EMP-002", Password: "whatever"})
	assert.ErrorIs(t, err, employee.ErrPasswordNotSet)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	env := newAuthEnv(t)
	env.createUser(t, "payroll1", true)

	resp, err := env.svc.Login(ctx, auth.LoginRequest{Username: "payroll1", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(ctx, resp.AccessToken, resp.AccessTokenExpiresIn))
	assert.True(t, env.jwt.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, env.svc.Logout(ctx, "", 0), auth.ErrInvalidToken)
}
