package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, employee_code, is_admin, linked_employee_id, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (pool o tx).
type UserRepo struct {
	q   Querier
	obs Observer
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier, obs Observer) *UserRepo {
	return &UserRepo{q: q, obs: obs}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	return observe(r.obs, "users.create", func() error {
		_, err := r.q.Exec(ctx, query,
			user.ID, user.Name, user.Email, user.PasswordHash, user.EmployeeCode, user.IsAdmin,
			user.LinkedEmployeeID, user.CreatedAt, user.UpdatedAt,
		)
		if name, ok := uniqueConstraint(err); ok {
			if name == "users_employee_code_key" {
				return domain.ErrEmployeeCodeExists
			}
			return domain.ErrEmailAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "users.get_by_id", `WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "users.get_by_email", `WHERE email = $1`, email)
}

// GetByEmployeeCode obtiene un usuario por su código de 6 dígitos.
func (r *UserRepo) GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error) {
	return r.getOne(ctx, "users.get_by_code", `WHERE employee_code = $1`, code)
}

// GetByLinkedEmployee obtiene la cuenta vinculada a un empleado.
func (r *UserRepo) GetByLinkedEmployee(ctx context.Context, employeeID string) (*entity.User, error) {
	return r.getOne(ctx, "users.get_by_employee", `WHERE linked_employee_id = $1`, employeeID)
}

func (r *UserRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ` + where + ` LIMIT 1`
	var u entity.User
	err := observe(r.obs, op, func() error {
		return r.q.QueryRow(ctx, query, arg).Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.EmployeeCode, &u.IsAdmin,
			&u.LinkedEmployeeID, &u.CreatedAt, &u.UpdatedAt,
		)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, "users.update_password",
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
}

// SetLinkedEmployee fija o limpia el vínculo con Employee.
func (r *UserRepo) SetLinkedEmployee(ctx context.Context, id string, employeeID *string) error {
	return r.exec(ctx, "users.set_link",
		`UPDATE users SET linked_employee_id = $2, updated_at = now() WHERE id = $1`, id, employeeID)
}

// SetAdmin cambia el flag de administrador (solo cmd/seed_admin).
func (r *UserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return r.exec(ctx, "users.set_admin",
		`UPDATE users SET is_admin = $2, updated_at = now() WHERE id = $1`, id, isAdmin)
}

func (r *UserRepo) exec(ctx context.Context, op, query string, args ...any) error {
	return observe(r.obs, op, func() error {
		tag, err := r.q.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
