package entity

import "time"

// LeaveType tipo de ausencia solicitada.
type LeaveType string

const (
	LeaveSick   LeaveType = "sick"
	LeaveCasual LeaveType = "casual"
	LeavePaid   LeaveType = "paid"
)

// Valid indica si t es un tipo de ausencia conocido.
func (t LeaveType) Valid() bool {
	return t == LeaveSick || t == LeaveCasual || t == LeavePaid
}

// LeaveStatus estado de la solicitud. Nace pending; approved y rejected son finales.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Final indica si la solicitud ya fue resuelta.
func (s LeaveStatus) Final() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// LeaveRequest solicitud de ausencia de una cuenta. Las fechas son días civiles
// (medianoche UTC) y el rango es inclusivo.
type LeaveRequest struct {
	ID         string
	UserID     string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveStatus
	ReviewedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Days días naturales cubiertos, ambos extremos incluidos.
func (l *LeaveRequest) Days() int {
	if l.EndDate.Before(l.StartDate) {
		return 0
	}
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
