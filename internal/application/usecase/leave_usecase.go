package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

// MaxLeaveDays tope de días por solicitud.
const MaxLeaveDays = 90

// LeaveUseCase solicitudes de ausencia: alta, historial propio y resolución por el admin.
type LeaveUseCase struct {
	leaves repository.LeaveRepository
	policy policy.AttendancePolicy
	log    *logger.Logger
	now    func() time.Time
}

// NewLeaveUseCase construye el caso de uso.
func NewLeaveUseCase(leaves repository.LeaveRepository, p policy.AttendancePolicy, log *logger.Logger) *LeaveUseCase {
	return &LeaveUseCase{
		leaves: leaves,
		policy: p,
		log:    log.Named("leaves"),
		now:    time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LeaveUseCase) WithClock(now func() time.Time) *LeaveUseCase {
	uc.now = now
	return uc
}

// Request registra una solicitud pending a nombre del actor.
func (uc *LeaveUseCase) Request(ctx context.Context, actor policy.Actor, in dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	typ := entity.LeaveType(in.Type)
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: tipo %q (sick, casual, paid)", domain.ErrInvalidInput, in.Type)
	}
	start, err := parseCivilDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseCivilDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	now := uc.now()
	leave := &entity.LeaveRequest{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		Type:      typ,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    entity.LeavePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if leave.Days() > MaxLeaveDays {
		return nil, fmt.Errorf("%w: máximo %d días por solicitud", domain.ErrInvalidInput, MaxLeaveDays)
	}
	if err := uc.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", actor.UserID).Str("type", in.Type).Int("dias", leave.Days()).Msg("ausencia solicitada")
	resp := dto.ToLeaveResponse(leave)
	return &resp, nil
}

// History solicitudes del propio actor, la más reciente primero.
func (uc *LeaveUseCase) History(ctx context.Context, actor policy.Actor) (*dto.LeaveHistoryResponse, error) {
	list, err := uc.leaves.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.LeaveHistoryResponse{Leaves: dto.ToLeaveResponses(list)}, nil
}

// Resolve aprueba o rechaza una solicitud pendiente (solo admin).
func (uc *LeaveUseCase) Resolve(ctx context.Context, actor policy.Actor, id string, in dto.ResolveLeaveRequest) (*dto.LeaveResponse, error) {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return nil, err
	}
	status := entity.LeaveStatus(in.Status)
	if !status.Final() {
		return nil, fmt.Errorf("%w: estado %q (approved, rejected)", domain.ErrInvalidInput, in.Status)
	}
	leave, err := uc.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave == nil {
		return nil, fmt.Errorf("%w: solicitud de ausencia", domain.ErrNotFound)
	}
	if leave.Status.Final() {
		return nil, fmt.Errorf("%w: la solicitud ya fue resuelta", domain.ErrConflict)
	}

	now := uc.now()
	if err := uc.leaves.Resolve(ctx, id, status, actor.UserID, now); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.UserID).Str("leave_id", id).Str("status", in.Status).Msg("ausencia resuelta")

	reviewer := actor.UserID
	leave.Status, leave.ReviewedBy, leave.UpdatedAt = status, &reviewer, now
	resp := dto.ToLeaveResponse(leave)
	return &resp, nil
}

func parseCivilDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}
