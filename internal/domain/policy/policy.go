// Package policy concentra todas las decisiones de autorización y de transición
// de estado de la asistencia. Es puro: recibe una foto ya leída del almacén
// (actor, empleado objetivo, registro del día) y no hace I/O.
package policy

import (
	"fmt"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// Scope amplitud de registros que se piden ver.
type Scope string

const (
	ScopeOwn Scope = "own"
	ScopeAll Scope = "all"
)

// ParseScope interpreta el parámetro de consulta; vacío equivale a own.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeOwn:
		return ScopeOwn, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("%w: scope %q", domain.ErrInvalidInput, s)
}

// Actor usuario autenticado, resuelto por petición desde la sesión.
type Actor struct {
	UserID           string
	Email            string
	IsAdmin          bool
	LinkedEmployeeID string // vacío si la cuenta no tiene empleado
}

// AttendancePolicy interfaz única de decisiones, usable desde cualquier transporte.
type AttendancePolicy interface {
	CanViewRecords(actor Actor, scope Scope) bool
	EffectiveScope(actor Actor, requested Scope) Scope
	CanMutateAttendance(actor Actor, target *entity.Employee) bool
	AuthorizeMutation(actor Actor, target *entity.Employee) error
	MarkAttendance(employeeID string, status entity.AttendanceStatus, occurredAt time.Time, existing *entity.AttendanceRecord) (*entity.AttendanceRecord, error)
	CheckOut(employeeID string, occurredAt time.Time, existing *entity.AttendanceRecord) (*entity.AttendanceRecord, error)
	CanManageRoster(actor Actor) bool
	AuthorizeRoster(actor Actor) error
}

var _ AttendancePolicy = (*Rules)(nil)

// Rules implementación por defecto. Location define el día civil de asistencia.
type Rules struct {
	Location *time.Location
}

// NewRules construye la política; loc nil = UTC.
func NewRules(loc *time.Location) *Rules {
	if loc == nil {
		loc = time.UTC
	}
	return &Rules{Location: loc}
}

// CanViewRecords: own siempre; all solo para administradores.
func (r *Rules) CanViewRecords(actor Actor, scope Scope) bool {
	switch scope {
	case ScopeOwn:
		return true
	case ScopeAll:
		return actor.IsAdmin
	}
	return false
}

// EffectiveScope degrada a own lo que el actor no puede ver.
func (r *Rules) EffectiveScope(actor Actor, requested Scope) Scope {
	if r.CanViewRecords(actor, requested) {
		return requested
	}
	return ScopeOwn
}

// CanMutateAttendance es cierto sii el email del actor coincide con el del empleado
// activo objetivo. Ser administrador no da derechos sobre la asistencia de otros.
func (r *Rules) CanMutateAttendance(actor Actor, target *entity.Employee) bool {
	if target == nil || !target.IsActive {
		return false
	}
	return SameEmail(actor.Email, target.Email)
}

// AuthorizeMutation igual que CanMutateAttendance pero con la denegación tipada.
func (r *Rules) AuthorizeMutation(actor Actor, target *entity.Employee) error {
	if target == nil || !target.IsActive {
		return Deny(KindNotFound, "no hay un empleado activo vinculado a la cuenta")
	}
	if !SameEmail(actor.Email, target.Email) {
		return Deny(KindUnauthorized, "solo puede registrar su propia asistencia")
	}
	return nil
}

// MarkAttendance valida el primer marcado del día y devuelve el registro a crear.
// Cualquier registro existente para el día lo impide, aunque el estado sea el mismo.
// El ID lo asigna quien persiste.
func (r *Rules) MarkAttendance(employeeID string, status entity.AttendanceStatus, occurredAt time.Time, existing *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	if !status.Markable() {
		return nil, fmt.Errorf("%w: estado %q no permitido (present, absent, late)", domain.ErrInvalidInput, status)
	}
	if existing != nil {
		return nil, Deny(KindAlreadyMarked, "la asistencia ya fue registrada hoy")
	}

	rec := &entity.AttendanceRecord{
		EmployeeID:   employeeID,
		Date:         entity.DateOf(occurredAt, r.Location),
		Status:       status,
		MarkedStatus: status,
		CreatedAt:    occurredAt,
		UpdatedAt:    occurredAt,
	}
	if status != entity.AttendanceAbsent {
		in := occurredAt
		rec.CheckIn = &in
	}
	return rec, nil
}

// CheckOut cierra un día marcado present o late. No modifica existing.
func (r *Rules) CheckOut(employeeID string, occurredAt time.Time, existing *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	switch {
	case existing == nil:
		return nil, Deny(KindInvalidTransition, "no hay entrada registrada hoy")
	case existing.EmployeeID != employeeID:
		return nil, Deny(KindInvalidTransition, "el registro no pertenece al empleado")
	case existing.Status == entity.AttendanceAbsent:
		return nil, Deny(KindInvalidTransition, "no se puede registrar salida de una ausencia")
	case existing.CheckOut != nil || existing.Status == entity.AttendanceCheckedOut:
		return nil, Deny(KindInvalidTransition, "la salida ya fue registrada")
	case existing.CheckIn == nil:
		return nil, Deny(KindInvalidTransition, "no hay entrada registrada hoy")
	case occurredAt.Before(*existing.CheckIn):
		return nil, Deny(KindInvalidTransition, "la salida no puede ser anterior a la entrada")
	}

	out := *existing
	at := occurredAt
	out.CheckOut = &at
	out.Status = entity.AttendanceCheckedOut
	out.UpdatedAt = occurredAt
	return &out, nil
}

// CanManageRoster: solo administradores crean, dan de baja o corrigen empleados.
func (r *Rules) CanManageRoster(actor Actor) bool {
	return actor.IsAdmin
}

// AuthorizeRoster versión tipada de CanManageRoster.
func (r *Rules) AuthorizeRoster(actor Actor) error {
	if !r.CanManageRoster(actor) {
		return Deny(KindUnauthorized, "se requieren permisos de administrador")
	}
	return nil
}

// EmployeeStatusAfter proyección del registro sobre el estado desnormalizado del empleado.
func EmployeeStatusAfter(rec *entity.AttendanceRecord) entity.EmployeeStatus {
	if rec == nil {
		return entity.EmployeeUnmarked
	}
	return entity.EmployeeStatus(rec.Status)
}
