package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.data.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return user.User{}, user.ErrUsernameExists
		}
	}
	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return user.User{}, err
		}
		u.ID = id
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.data.users[u.ID] = u
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	defer r.s.lock(ctx)()

	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepo) List(ctx context.Context) ([]user.User, error) {
	defer r.s.lock(ctx)()

	out := make([]user.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user.User) int { return strings.Compare(a.Username, b.Username) })
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.Role = u.Role
	existing.IsActive = u.IsActive
	existing.UpdatedAt = r.s.now()
	r.s.data.users[u.ID] = existing
	return existing, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	defer r.s.lock(ctx)()

	u, ok := r.s.data.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLogin = &at
	r.s.data.users[id] = u
	return nil
}
