package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, employee_id, employee_name, date, check_in, check_out, status, marked_status, created_at, updated_at`

// AttendanceRepo implementación de AttendanceRepository sobre PostgreSQL (pool o tx).
type AttendanceRepo struct {
	q   Querier
	obs Observer
}

// NewAttendanceRepository construye el adaptador de asistencia.
func NewAttendanceRepository(q Querier, obs Observer) *AttendanceRepo {
	return &AttendanceRepo{q: q, obs: obs}
}

func scanAttendance(row rowScanner) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	var status, marked string
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&status, &marked, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Status = entity.AttendanceStatus(status)
	rec.MarkedStatus = entity.AttendanceStatus(marked)
	return &rec, nil
}

// Create inserta el registro del día. La restricción UNIQUE(employee_id, date)
// resuelve la carrera entre dos marcados simultáneos.
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	return observe(r.obs, "attendance.create", func() error {
		_, err := r.q.Exec(ctx, query,
			rec.ID, rec.EmployeeID, rec.EmployeeName, rec.Date, rec.CheckIn, rec.CheckOut,
			string(rec.Status), string(rec.MarkedStatus), rec.CreatedAt, rec.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
		return nil
	})
}

// GetForDate obtiene el registro de un empleado para una fecha civil.
func (r *AttendanceRepo) GetForDate(ctx context.Context, employeeID string, date time.Time) (*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2`
	var out *entity.AttendanceRecord
	err := observe(r.obs, "attendance.get_for_date", func() error {
		rec, err := scanAttendance(r.q.QueryRow(ctx, query, employeeID, date))
		out = rec
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance for date: %w", err)
	}
	return out, nil
}

// CloseDay registra la salida; la condición check_out IS NULL hace que una
// segunda salida concurrente no afecte filas.
func (r *AttendanceRepo) CloseDay(ctx context.Context, rec *entity.AttendanceRecord) error {
	return observe(r.obs, "attendance.close_day", func() error {
		tag, err := r.q.Exec(ctx, `
			UPDATE attendance_records SET check_out = $2, status = $3, updated_at = $4
			WHERE id = $1 AND check_out IS NULL AND status <> 'absent'`,
			rec.ID, rec.CheckOut, string(rec.Status), rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("close attendance day: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConflict
		}
		return nil
	})
}

// whereFilter arma el WHERE común de List y Stats.
func whereFilter(employeeID string, from, to *time.Time) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if employeeID != "" {
		add("employee_id = $%d", employeeID)
	}
	if from != nil {
		add("date >= $%d", *from)
	}
	if to != nil {
		add("date <= $%d", *to)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List devuelve registros del más reciente al más antiguo.
func (r *AttendanceRepo) List(ctx context.Context, f repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	where, args := whereFilter(f.EmployeeID, f.From, f.To)
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records` + where +
		` ORDER BY date DESC, check_in DESC NULLS LAST`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var list []*entity.AttendanceRecord
	err := observe(r.obs, "attendance.list", func() error {
		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			rec, err := scanAttendance(rows)
			if err != nil {
				return fmt.Errorf("scan attendance: %w", err)
			}
			list = append(list, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return list, nil
}

// Stats cuenta días por estado marcado y suma las horas trabajadas (NUMERIC).
func (r *AttendanceRepo) Stats(ctx context.Context, employeeID string, from, to *time.Time) (entity.AttendanceStats, error) {
	where, args := whereFilter(employeeID, from, to)
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE marked_status = 'present'),
		       count(*) FILTER (WHERE marked_status = 'late'),
		       count(*) FILTER (WHERE marked_status = 'absent'),
		       count(*) FILTER (WHERE status = 'checked_out'),
		       COALESCE(ROUND((SUM(EXTRACT(EPOCH FROM (check_out - check_in))) / 3600)::numeric, 2), 0)
		FROM attendance_records` + where

	var st entity.AttendanceStats
	err := observe(r.obs, "attendance.stats", func() error {
		return r.q.QueryRow(ctx, query, args...).Scan(
			&st.Total, &st.Present, &st.Late, &st.Absent, &st.CheckedOut, &st.WorkedHours,
		)
	})
	if err != nil {
		return entity.AttendanceStats{}, fmt.Errorf("attendance stats: %w", err)
	}
	return st, nil
}
