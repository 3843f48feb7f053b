package entity

import "time"

// User representa la identidad de autenticación. Se enlaza con un Employee
// mediante LinkedEmployeeID, que se resuelve al iniciar sesión.
type User struct {
	ID               string
	Name             string
	Email            string // normalizado (minúsculas, sin espacios)
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	EmployeeCode     string // 6 dígitos, único
	IsAdmin          bool   // solo cambia fuera de la API (cmd/seed_admin)
	LinkedEmployeeID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLinked indica si el usuario ya tiene un empleado asociado.
func (u *User) IsLinked() bool {
	return u.LinkedEmployeeID != nil && *u.LinkedEmployeeID != ""
}
