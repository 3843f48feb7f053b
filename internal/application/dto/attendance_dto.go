package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarkAttendanceRequest primer marcado del día. EmployeeID vacío = el empleado vinculado a la cuenta.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	Status     string `json:"status" validate:"required,oneof=present absent late"`
}

// CheckOutRequest salida del día. EmployeeID vacío = el empleado vinculado a la cuenta.
type CheckOutRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

// AttendanceQuery filtros de listado (query string).
type AttendanceQuery struct {
	Scope string `query:"scope" validate:"omitempty,oneof=own all"`
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

// AttendanceRecordResponse salida de un registro diario.
type AttendanceRecordResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Date         string           `json:"date"`
	CheckIn      *time.Time       `json:"check_in"`
	CheckOut     *time.Time       `json:"check_out"`
	Status       string           `json:"status"`
	MarkedStatus string           `json:"marked_status"`
	WorkedHours  *decimal.Decimal `json:"worked_hours,omitempty"`
}

// AttendanceListResponse listado con el alcance efectivamente aplicado.
type AttendanceListResponse struct {
	Scope   string                     `json:"scope"`
	Count   int                        `json:"count"`
	Records []AttendanceRecordResponse `json:"records"`
}

// StatsResponse conteos y porcentaje de asistencia (present + late sobre total).
type StatsResponse struct {
	Total       int             `json:"total_days"`
	Present     int             `json:"present_days"`
	Late        int             `json:"late_days"`
	Absent      int             `json:"absent_days"`
	CheckedOut  int             `json:"checked_out_days"`
	Percentage  decimal.Decimal `json:"attendance_percentage"`
	WorkedHours decimal.Decimal `json:"worked_hours"`
}

// SummaryResponse resumen mensual del empleado propio.
type SummaryResponse struct {
	EmployeeID string        `json:"employee_id"`
	Month      string        `json:"month"`
	Stats      StatsResponse `json:"stats"`
}
