package repository

import (
	"context"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si ya hay un activo con el email.
	Create(ctx context.Context, emp *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetActiveByEmail(ctx context.Context, email string) (*entity.Employee, error)
	ListActive(ctx context.Context) ([]*entity.Employee, error)
	ListDeleted(ctx context.Context) ([]*entity.Employee, error)
	UpdateStatus(ctx context.Context, id string, status entity.EmployeeStatus, at time.Time) error
	// SoftDelete devuelve domain.ErrEmployeeNotFound si no existe o ya estaba inactivo.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
