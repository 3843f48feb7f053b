package memory

import (
	"context"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	c conn
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.c.do(ctx, func(s *state) error {
		for _, u := range s.users {
			if u.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
			if u.EmployeeCode == user.EmployeeCode {
				return domain.ErrEmployeeCodeExists
			}
		}
		s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error) {
	return r.find(ctx, func(u entity.User) bool { return u.EmployeeCode == code })
}

func (r *UserRepo) GetByLinkedEmployee(ctx context.Context, employeeID string) (*entity.User, error) {
	return r.find(ctx, func(u entity.User) bool {
		return u.LinkedEmployeeID != nil && *u.LinkedEmployeeID == employeeID
	})
}

func (r *UserRepo) find(ctx context.Context, match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.c.do(ctx, func(s *state) error {
		for _, u := range s.users {
			if match(u) {
				cp := u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (r *UserRepo) SetLinkedEmployee(ctx context.Context, id string, employeeID *string) error {
	return r.update(ctx, id, func(u *entity.User) {
		if employeeID == nil {
			u.LinkedEmployeeID = nil
			return
		}
		v := *employeeID
		u.LinkedEmployeeID = &v
	})
}

func (r *UserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return r.update(ctx, id, func(u *entity.User) { u.IsAdmin = isAdmin })
}

func (r *UserRepo) update(ctx context.Context, id string, fn func(u *entity.User)) error {
	return r.c.do(ctx, func(s *state) error {
		u, ok := s.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		fn(&u)
		s.users[id] = u
		return nil
	})
}
