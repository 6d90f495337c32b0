package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo user.UserRepository, logger *slog.Logger) user.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	s.logger.Info("user created", "user_id", created.ID, "username", created.Username, "role", created.Role)
	return user.ToResponse(created), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.ToResponse(u))
	}
	return resp, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// UpdateUser applies a partial update. An admin cannot remove their own admin
// role or deactivate their own account.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.ActorID == req.ID {
		if req.Role != nil && user.Role(*req.Role) != user.RoleAdmin && existing.IsAdmin() {
			return user.UserResponse{}, user.ErrCannotDemoteSelf
		}
		if req.IsActive != nil && !*req.IsActive {
			return user.UserResponse{}, user.ErrCannotDemoteSelf
		}
	}

	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		existing.PasswordHash = hash
	}

	updated, err := s.userRepo.Update(ctx, existing)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	created, err := s.userRepo.Create(ctx, user.User{
		Username:     username,
		Email:        username + "@localhost",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		IsActive:     true,
	})
	if errors.Is(err, user.ErrUsernameExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info("bootstrap admin created", "user_id", created.ID, "username", created.Username)
	return true, nil
}
