package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, name, email, department, status, is_active, deleted_at, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (pool o tx).
type EmployeeRepo struct {
	q   Querier
	obs Observer
}

// NewEmployeeRepository construye el adaptador de empleados.
func NewEmployeeRepository(q Querier, obs Observer) *EmployeeRepo {
	return &EmployeeRepo{q: q, obs: obs}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	var status string
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &status, &e.IsActive,
		&e.DeletedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Status = entity.EmployeeStatus(status)
	return &e, nil
}

// Create inserta un empleado; email duplicado entre activos -> ErrEmailAlreadyExists.
func (r *EmployeeRepo) Create(ctx context.Context, emp *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	return observe(r.obs, "employees.create", func() error {
		_, err := r.q.Exec(ctx, query,
			emp.ID, emp.Name, emp.Email, emp.Department, string(emp.Status), emp.IsActive,
			emp.DeletedAt, emp.CreatedAt, emp.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("insert employee: %w", err)
		}
		return nil
	})
}

// GetByID obtiene un empleado (activo o no).
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.getOne(ctx, "employees.get_by_id", `WHERE id = $1`, id)
}

// GetActiveByEmail obtiene el empleado activo con ese email.
func (r *EmployeeRepo) GetActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return r.getOne(ctx, "employees.get_by_email", `WHERE email = $1 AND is_active`, email)
}

func (r *EmployeeRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Employee, error) {
	var out *entity.Employee
	err := observe(r.obs, op, func() error {
		e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees `+where, arg))
		if err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// ListActive lista los empleados activos por nombre.
func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	return r.list(ctx, "employees.list_active", `WHERE is_active ORDER BY name ASC`)
}

// ListDeleted lista los dados de baja, más recientes primero.
func (r *EmployeeRepo) ListDeleted(ctx context.Context) ([]*entity.Employee, error) {
	return r.list(ctx, "employees.list_deleted", `WHERE NOT is_active ORDER BY deleted_at DESC NULLS LAST`)
}

func (r *EmployeeRepo) list(ctx context.Context, op, tail string) ([]*entity.Employee, error) {
	var list []*entity.Employee
	err := observe(r.obs, op, func() error {
		rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees `+tail)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				return fmt.Errorf("scan employee: %w", err)
			}
			list = append(list, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateStatus actualiza el estado desnormalizado.
func (r *EmployeeRepo) UpdateStatus(ctx context.Context, id string, status entity.EmployeeStatus, at time.Time) error {
	return observe(r.obs, "employees.update_status", func() error {
		tag, err := r.q.Exec(ctx,
			`UPDATE employees SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
		if err != nil {
			return fmt.Errorf("update employee status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}

// SoftDelete marca inactivo al empleado; el historial se conserva.
func (r *EmployeeRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return observe(r.obs, "employees.soft_delete", func() error {
		tag, err := r.q.Exec(ctx, `
			UPDATE employees SET is_active = FALSE, deleted_at = $2, updated_at = $2
			WHERE id = $1 AND is_active`, id, at)
		if err != nil {
			return fmt.Errorf("soft delete employee: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}
