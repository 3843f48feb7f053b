package repository

import "context"

// AttendanceTx repos atados a una misma transacción.
type AttendanceTx struct {
	Users      UserRepository
	Employees  EmployeeRepository
	Attendance AttendanceRepository
}

// TxRunner ejecuta fn en una transacción: commit si devuelve nil, rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx AttendanceTx) error) error
}
