package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación en memoria de EmployeeRepository.
type EmployeeRepo struct {
	c conn
}

func (r *EmployeeRepo) Create(ctx context.Context, emp *entity.Employee) error {
	return r.c.do(ctx, func(s *state) error {
		if emp.IsActive {
			for _, e := range s.employees {
				if e.IsActive && e.Email == emp.Email {
					return domain.ErrEmailAlreadyExists
				}
			}
		}
		s.employees[emp.ID] = *emp
		return nil
	})
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.c.do(ctx, func(s *state) error {
		if e, ok := s.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) GetActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.c.do(ctx, func(s *state) error {
		for _, e := range s.employees {
			if e.IsActive && e.Email == email {
				cp := e
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	list, err := r.filter(ctx, func(e entity.Employee) bool { return e.IsActive })
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *EmployeeRepo) ListDeleted(ctx context.Context) ([]*entity.Employee, error) {
	list, err := r.filter(ctx, func(e entity.Employee) bool { return !e.IsActive })
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].DeletedAt, list[j].DeletedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return list, nil
}

func (r *EmployeeRepo) filter(ctx context.Context, keep func(entity.Employee) bool) ([]*entity.Employee, error) {
	var list []*entity.Employee
	err := r.c.do(ctx, func(s *state) error {
		for _, e := range s.employees {
			if keep(e) {
				cp := e
				list = append(list, &cp)
			}
		}
		return nil
	})
	return list, err
}

func (r *EmployeeRepo) UpdateStatus(ctx context.Context, id string, status entity.EmployeeStatus, at time.Time) error {
	return r.c.do(ctx, func(s *state) error {
		e, ok := s.employees[id]
		if !ok {
			return domain.ErrEmployeeNotFound
		}
		e.Status = status
		e.UpdatedAt = at
		s.employees[id] = e
		return nil
	})
}

func (r *EmployeeRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.c.do(ctx, func(s *state) error {
		e, ok := s.employees[id]
		if !ok || !e.IsActive {
			return domain.ErrEmployeeNotFound
		}
		deleted := at
		e.IsActive = false
		e.DeletedAt = &deleted
		e.UpdatedAt = at
		s.employees[id] = e
		return nil
	})
}
