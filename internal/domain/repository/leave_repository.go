package repository

import (
	"context"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// LeaveRepository define el puerto de persistencia para LeaveRequest.
type LeaveRepository interface {
	Create(ctx context.Context, leave *entity.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	// ListByUser devuelve las solicitudes de la cuenta, la más reciente primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.LeaveRequest, error)
	// Resolve pasa una solicitud pending a status; si ya no estaba pending, domain.ErrConflict.
	Resolve(ctx context.Context, id string, status entity.LeaveStatus, reviewerID string, at time.Time) error
}
