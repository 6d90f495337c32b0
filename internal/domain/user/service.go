package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	// EnsureAdmin creates an admin account with the given credentials unless
	// the username is already taken.
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)
}
