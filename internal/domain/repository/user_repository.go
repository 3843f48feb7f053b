package repository

import (
	"context"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error)
	GetByLinkedEmployee(ctx context.Context, employeeID string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetLinkedEmployee fija o limpia (employeeID nil) el vínculo con Employee.
	SetLinkedEmployee(ctx context.Context, id string, employeeID *string) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}
