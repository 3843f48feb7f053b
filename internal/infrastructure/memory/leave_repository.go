package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

// LeaveRepo implementación en memoria de LeaveRepository.
type LeaveRepo struct {
	c conn
}

func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	return r.c.do(ctx, func(s *state) error {
		if _, taken := s.leaves[l.ID]; taken {
			return domain.ErrDuplicate
		}
		s.leaves[l.ID] = *l
		return nil
	})
}

func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	var out *entity.LeaveRequest
	err := r.c.do(ctx, func(s *state) error {
		if l, ok := s.leaves[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LeaveRepo) ListByUser(ctx context.Context, userID string) ([]*entity.LeaveRequest, error) {
	var list []*entity.LeaveRequest
	err := r.c.do(ctx, func(s *state) error {
		for _, l := range s.leaves {
			if l.UserID == userID {
				cp := l
				list = append(list, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *LeaveRepo) Resolve(ctx context.Context, id string, status entity.LeaveStatus, reviewerID string, at time.Time) error {
	return r.c.do(ctx, func(s *state) error {
		l, ok := s.leaves[id]
		if !ok || l.Status != entity.LeavePending {
			return domain.ErrConflict
		}
		reviewer := reviewerID
		l.Status = status
		l.ReviewedBy = &reviewer
		l.UpdatedAt = at
		s.leaves[id] = l
		return nil
	})
}
