package repository

import (
	"context"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// AttendanceFilter criterios de listado. Campos vacíos no filtran.
type AttendanceFilter struct {
	EmployeeID string
	From       *time.Time // fecha civil inclusive
	To         *time.Time // fecha civil inclusive
	Limit      int
}

// AttendanceRepository define el puerto de persistencia para AttendanceRecord.
// La unicidad (employee_id, date) la garantiza el almacén.
type AttendanceRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe registro para (empleado, fecha).
	Create(ctx context.Context, rec *entity.AttendanceRecord) error
	GetForDate(ctx context.Context, employeeID string, date time.Time) (*entity.AttendanceRecord, error)
	// CloseDay registra la salida solo si aún no había; si no, domain.ErrConflict.
	CloseDay(ctx context.Context, rec *entity.AttendanceRecord) error
	List(ctx context.Context, f AttendanceFilter) ([]*entity.AttendanceRecord, error)
	Stats(ctx context.Context, employeeID string, from, to *time.Time) (entity.AttendanceStats, error)
}
