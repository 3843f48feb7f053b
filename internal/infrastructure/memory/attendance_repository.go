package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación en memoria de AttendanceRepository.
type AttendanceRepo struct {
	c conn
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(time.DateOnly)
}

func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	return r.c.do(ctx, func(s *state) error {
		key := dayKey(rec.EmployeeID, rec.Date)
		if _, taken := s.dayIndex[key]; taken {
			return domain.ErrDuplicate
		}
		s.attendance[rec.ID] = *rec
		s.dayIndex[key] = rec.ID
		return nil
	})
}

func (r *AttendanceRepo) GetForDate(ctx context.Context, employeeID string, date time.Time) (*entity.AttendanceRecord, error) {
	var out *entity.AttendanceRecord
	err := r.c.do(ctx, func(s *state) error {
		id, ok := s.dayIndex[dayKey(employeeID, date)]
		if !ok {
			return nil
		}
		rec := s.attendance[id]
		out = &rec
		return nil
	})
	return out, err
}

func (r *AttendanceRepo) CloseDay(ctx context.Context, rec *entity.AttendanceRecord) error {
	return r.c.do(ctx, func(s *state) error {
		cur, ok := s.attendance[rec.ID]
		if !ok || cur.CheckOut != nil {
			return domain.ErrConflict
		}
		cur.CheckOut = rec.CheckOut
		cur.Status = rec.Status
		cur.UpdatedAt = rec.UpdatedAt
		s.attendance[rec.ID] = cur
		return nil
	})
}

func (r *AttendanceRepo) List(ctx context.Context, f repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	list, err := r.matching(ctx, f.EmployeeID, f.From, f.To)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *AttendanceRepo) Stats(ctx context.Context, employeeID string, from, to *time.Time) (entity.AttendanceStats, error) {
	var st entity.AttendanceStats
	var worked time.Duration
	list, err := r.matching(ctx, employeeID, from, to)
	if err != nil {
		return entity.AttendanceStats{}, err
	}
	for _, rec := range list {
		if rec.CheckIn != nil && rec.CheckOut != nil {
			worked += rec.CheckOut.Sub(*rec.CheckIn)
		}
		st.Total++
		switch rec.MarkedStatus {
		case entity.AttendancePresent:
			st.Present++
		case entity.AttendanceLate:
			st.Late++
		case entity.AttendanceAbsent:
			st.Absent++
		}
		if rec.Status == entity.AttendanceCheckedOut {
			st.CheckedOut++
		}
	}
	st.WorkedHours = decimal.NewFromFloat(worked.Hours()).Round(2)
	return st, nil
}

func (r *AttendanceRepo) matching(ctx context.Context, employeeID string, from, to *time.Time) ([]*entity.AttendanceRecord, error) {
	var list []*entity.AttendanceRecord
	err := r.c.do(ctx, func(s *state) error {
		for _, rec := range s.attendance {
			if employeeID != "" && rec.EmployeeID != employeeID {
				continue
			}
			if from != nil && rec.Date.Before(*from) {
				continue
			}
			if to != nil && rec.Date.After(*to) {
				continue
			}
			cp := rec
			list = append(list, &cp)
		}
		return nil
	})
	return list, err
}
