package dto

import (
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/policy"
)

// SignupRequest entrada para registro: el código de empleado es de 6 dígitos.
type SignupRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	EmployeeCode string `json:"employee_code" validate:"required,len=6,numeric"`
}

// LoginRequest entrada para login por código de empleado.
type LoginRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,len=6,numeric"`
	Password     string `json:"password" validate:"required"`
}

// ResetPasswordRequest restablece la contraseña identificando solo por código.
type ResetPasswordRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,len=6,numeric"`
	NewPassword  string `json:"new_password" validate:"required,min=6,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	EmployeeCode     string    `json:"employee_code"`
	IsAdmin          bool      `json:"is_admin"`
	LinkedEmployeeID *string   `json:"linked_employee_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// PermissionsResponse decisiones de la política para el actor actual (la UI solo las pinta).
type PermissionsResponse struct {
	ViewAllRecords    policy.Decision `json:"view_all_records"`
	ManageRoster      policy.Decision `json:"manage_roster"`
	MarkOwnAttendance policy.Decision `json:"mark_own_attendance"`
}

// MeResponse información del usuario autenticado.
type MeResponse struct {
	User        UserResponse        `json:"user"`
	Employee    *EmployeeResponse   `json:"employee"`
	Permissions PermissionsResponse `json:"permissions"`
}
