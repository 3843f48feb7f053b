package dto

import (
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// ToUserResponse convierte la entidad (sin hash).
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		EmployeeCode:     u.EmployeeCode,
		IsAdmin:          u.IsAdmin,
		LinkedEmployeeID: u.LinkedEmployeeID,
		CreatedAt:        u.CreatedAt,
	}
}

// ToEmployeeResponse convierte la entidad.
func ToEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Status:     string(e.Status),
		IsActive:   e.IsActive,
		DeletedAt:  e.DeletedAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEmployeeResponses convierte una lista; nunca devuelve nil.
func ToEmployeeResponses(list []*entity.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEmployeeResponse(e))
	}
	return out
}

// ToAttendanceRecordResponse convierte el registro; la fecha sale como YYYY-MM-DD.
func ToAttendanceRecordResponse(r *entity.AttendanceRecord) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format(time.DateOnly),
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Status:       string(r.Status),
		MarkedStatus: string(r.MarkedStatus),
	}
	if h, ok := r.WorkedHours(); ok {
		resp.WorkedHours = &h
	}
	return resp
}

// ToAttendanceRecordResponses convierte una lista; nunca devuelve nil.
func ToAttendanceRecordResponses(list []*entity.AttendanceRecord) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToAttendanceRecordResponse(r))
	}
	return out
}

// ToStatsResponse añade el porcentaje calculado.
func ToStatsResponse(s entity.AttendanceStats) StatsResponse {
	return StatsResponse{
		Total:       s.Total,
		Present:     s.Present,
		Late:        s.Late,
		Absent:      s.Absent,
		CheckedOut:  s.CheckedOut,
		Percentage:  s.Percentage(),
		WorkedHours: s.WorkedHours,
	}
}

// ToLeaveResponse convierte la solicitud; las fechas salen como YYYY-MM-DD.
func ToLeaveResponse(l *entity.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		Type:       string(l.Type),
		StartDate:  l.StartDate.Format(time.DateOnly),
		EndDate:    l.EndDate.Format(time.DateOnly),
		Days:       l.Days(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		ReviewedBy: l.ReviewedBy,
		CreatedAt:  l.CreatedAt,
	}
}

// ToLeaveResponses convierte una lista; nunca devuelve nil.
func ToLeaveResponses(list []*entity.LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToLeaveResponse(l))
	}
	return out
}
