package dto

import "time"

// CreateLeaveRequest solicitud de ausencia de la cuenta autenticada.
type CreateLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=sick casual paid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"max=500"`
}

// ResolveLeaveRequest decisión del admin sobre una solicitud pendiente.
type ResolveLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// LeaveResponse salida de una solicitud.
type LeaveResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ReviewedBy *string   `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaveHistoryResponse historial propio, más reciente primero.
type LeaveHistoryResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}
