package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus estado de un registro diario.
type AttendanceStatus string

const (
	AttendancePresent    AttendanceStatus = "present"
	AttendanceAbsent     AttendanceStatus = "absent"
	AttendanceLate       AttendanceStatus = "late"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
)

// Markable indica si el estado puede elegirse al marcar asistencia.
func (s AttendanceStatus) Markable() bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}

// AttendanceRecord un registro por (empleado, fecha). Nunca se borra.
type AttendanceRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string    // copia del nombre al marcar (listados e informes)
	Date         time.Time // fecha civil, medianoche UTC
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       AttendanceStatus
	MarkedStatus AttendanceStatus // estado elegido al marcar; se conserva tras la salida
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkedHours horas entre entrada y salida, redondeadas a 2 decimales.
// Devuelve false si falta alguno de los dos tiempos.
func (r *AttendanceRecord) WorkedHours() (decimal.Decimal, bool) {
	if r.CheckIn == nil || r.CheckOut == nil {
		return decimal.Zero, false
	}
	d := r.CheckOut.Sub(*r.CheckIn)
	if d < 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(d.Hours()).Round(2), true
}

// AttendanceStats conteo de días por estado marcado y horas trabajadas.
type AttendanceStats struct {
	Total       int
	Present     int
	Late        int
	Absent      int
	CheckedOut  int
	WorkedHours decimal.Decimal // suma de días con entrada y salida, 2 decimales
}

// Percentage días asistidos (present o late) sobre el total, en porcentaje con 2 decimales.
func (s AttendanceStats) Percentage() decimal.Decimal {
	if s.Total == 0 {
		return decimal.Zero
	}
	attended := decimal.NewFromInt(int64(s.Present + s.Late))
	return attended.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(s.Total))).Round(2)
}

// DateOf trunca t a su fecha civil en loc, expresada como medianoche UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
