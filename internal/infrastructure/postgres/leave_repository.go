package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

const leaveColumns = `id, user_id, type, start_date, end_date, reason, status, reviewed_by, created_at, updated_at`

// LeaveRepo implementación de LeaveRepository sobre PostgreSQL.
type LeaveRepo struct {
	q   Querier
	obs Observer
}

// NewLeaveRepository construye el adaptador de solicitudes de ausencia.
func NewLeaveRepository(q Querier, obs Observer) *LeaveRepo {
	return &LeaveRepo{q: q, obs: obs}
}

func scanLeave(row rowScanner) (*entity.LeaveRequest, error) {
	var l entity.LeaveRequest
	var typ, status string
	if err := row.Scan(&l.ID, &l.UserID, &typ, &l.StartDate, &l.EndDate, &l.Reason, &status,
		&l.ReviewedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Type = entity.LeaveType(typ)
	l.Status = entity.LeaveStatus(status)
	return &l, nil
}

// Create inserta la solicitud.
func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	return observe(r.obs, "leaves.create", func() error {
		_, err := r.q.Exec(ctx, query,
			l.ID, l.UserID, string(l.Type), l.StartDate, l.EndDate, l.Reason, string(l.Status),
			l.ReviewedBy, l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert leave request: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una solicitud.
func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	var out *entity.LeaveRequest
	err := observe(r.obs, "leaves.get_by_id", func() error {
		l, err := scanLeave(r.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
		out = l
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return out, nil
}

// ListByUser historial de la cuenta, más reciente primero.
func (r *LeaveRepo) ListByUser(ctx context.Context, userID string) ([]*entity.LeaveRequest, error) {
	var list []*entity.LeaveRequest
	err := observe(r.obs, "leaves.list_by_user", func() error {
		rows, err := r.q.Query(ctx,
			`SELECT `+leaveColumns+` FROM leave_requests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			l, err := scanLeave(rows)
			if err != nil {
				return fmt.Errorf("scan leave request: %w", err)
			}
			list = append(list, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return list, nil
}

// Resolve aprueba o rechaza; la condición status = 'pending' evita resolver dos veces.
func (r *LeaveRepo) Resolve(ctx context.Context, id string, status entity.LeaveStatus, reviewerID string, at time.Time) error {
	return observe(r.obs, "leaves.resolve", func() error {
		tag, err := r.q.Exec(ctx, `
			UPDATE leave_requests SET status = $2, reviewed_by = $3, updated_at = $4
			WHERE id = $1 AND status = 'pending'`,
			id, string(status), reviewerID, at)
		if err != nil {
			return fmt.Errorf("resolve leave request: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConflict
		}
		return nil
	})
}
