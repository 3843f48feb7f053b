package entity

import "time"

// EmployeeStatus estado desnormalizado del empleado (refleja su último registro del día).
type EmployeeStatus string

const (
	EmployeeUnmarked   EmployeeStatus = "unmarked"
	EmployeePresent    EmployeeStatus = "present"
	EmployeeAbsent     EmployeeStatus = "absent"
	EmployeeLate       EmployeeStatus = "late"
	EmployeeCheckedOut EmployeeStatus = "checked_out"
)

// Valid indica si s es uno de los estados conocidos.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeUnmarked, EmployeePresent, EmployeeAbsent, EmployeeLate, EmployeeCheckedOut:
		return true
	}
	return false
}

// Employee persona gestionada por la nómina de asistencia. El borrado es lógico:
// IsActive=false y DeletedAt con la fecha; el historial se conserva.
type Employee struct {
	ID         string
	Name       string
	Email      string // normalizado; único entre empleados activos
	Department string
	Status     EmployeeStatus
	IsActive   bool
	DeletedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
