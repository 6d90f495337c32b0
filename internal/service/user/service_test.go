package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() user.UserService {
	return NewUserService(memory.NewStore().Users(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateUser(ctx, user.CreateUserRequest{Username: "rina", Email: "rina@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, user.RolePettyCash, created.Role)
	assert.True(t, created.IsActive)

	_, err = svc.CreateUser(ctx, user.CreateUserRequest{Username: "RINA", Email: "r2@example.com", Password: "password1"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = svc.CreateUser(ctx, user.CreateUserRequest{Username: "x", Email: "bad", Password: "short", Role: "root"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	for _, f := range []string{"username", "email", "password", "role"} {
		assert.Contains(t, fields, f)
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	admin, err := svc.CreateUser(ctx, user.CreateUserRequest{Username: "admin", Email: "a@example.com", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	clerk, err := svc.CreateUser(ctx, user.CreateUserRequest{Username: "clerk", Email: "c@example.com", Password: "password1"})
	require.NoError(t, err)

	role := string(user.RolePayroll)
	inactive := false
	updated, err := svc.UpdateUser(ctx, user.UpdateUserRequest{ID: clerk.ID, ActorID: admin.ID, Role: &role, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, user.RolePayroll, updated.Role)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateUser(ctx, user.UpdateUserRequest{ID: admin.ID, ActorID: admin.ID, Role: &role})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)
	_, err = svc.UpdateUser(ctx, user.UpdateUserRequest{ID: admin.ID, ActorID: admin.ID, IsActive: &inactive})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)

	_, err = svc.UpdateUser(ctx, user.UpdateUserRequest{ID: "missing", ActorID: admin.ID})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.EnsureAdmin(ctx, "root", "password1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "root", "other-password")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.RoleAdmin, users[0].Role)
}
