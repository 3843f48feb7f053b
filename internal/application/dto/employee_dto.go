package dto

import "time"

// CreateEmployeeRequest alta de empleado (solo admin). Password vacío usa la contraseña inicial configurada.
type CreateEmployeeRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Department   string `json:"department" validate:"required,max=100"`
	EmployeeCode string `json:"employee_code" validate:"required,len=6,numeric"`
	Password     string `json:"password" validate:"omitempty,min=6,max=72"`
}

// UpdateEmployeeStatusRequest corrección manual del estado (solo admin).
type UpdateEmployeeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=present absent late"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
	IsActive   bool       `json:"is_active"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateEmployeeResponse empleado creado y cuenta asociada.
type CreateEmployeeResponse struct {
	Employee     EmployeeResponse `json:"employee"`
	UserID       string           `json:"user_id"`
	EmployeeCode string           `json:"employee_code"`
	UserCreated  bool             `json:"user_created"`
}

// EmployeeDetailsResponse empleado con código de cuenta y estadísticas históricas.
type EmployeeDetailsResponse struct {
	Employee     EmployeeResponse `json:"employee"`
	EmployeeCode string           `json:"employee_code,omitempty"`
	Stats        StatsResponse    `json:"stats"`
}
