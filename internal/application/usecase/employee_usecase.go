package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/auth"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

// EmployeeUseCase gestión de la nómina: altas, bajas lógicas, correcciones y consultas.
type EmployeeUseCase struct {
	tx              repository.TxRunner
	users           repository.UserRepository
	employees       repository.EmployeeRepository
	attendance      repository.AttendanceRepository
	policy          policy.AttendancePolicy
	defaultPassword string
	log             *logger.Logger
	now             func() time.Time
}

// NewEmployeeUseCase construye el caso de uso. defaultPassword se asigna a las cuentas
// creadas junto con el empleado cuando el admin no indica una.
func NewEmployeeUseCase(
	tx repository.TxRunner,
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	p policy.AttendancePolicy,
	defaultPassword string,
	log *logger.Logger,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		tx:              tx,
		users:           users,
		employees:       employees,
		attendance:      attendance,
		policy:          p,
		defaultPassword: defaultPassword,
		log:             log.Named("employees"),
		now:             time.Now,
	}
}

// Create da de alta un empleado y crea o vincula su cuenta en una sola transacción.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateEmployeeRequest) (*dto.CreateEmployeeResponse, error) {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return nil, err
	}
	email := policy.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || !auth.ValidEmployeeCode(in.EmployeeCode) {
		return nil, domain.ErrInvalidInput
	}
	password := in.Password
	if password == "" {
		password = uc.defaultPassword
	}
	if len(password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("%w: contraseña demasiado corta", domain.ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	emp := &entity.Employee{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Department: strings.TrimSpace(in.Department),
		Status:     entity.EmployeeUnmarked,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	resp := &dto.CreateEmployeeResponse{}

	err = uc.tx.Run(ctx, func(tx repository.AttendanceTx) error {
		if taken, err := tx.Employees.GetActiveByEmail(ctx, email); err != nil {
			return err
		} else if taken != nil {
			return domain.ErrEmailAlreadyExists
		}
		account, err := tx.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		byCode, err := tx.Users.GetByEmployeeCode(ctx, in.EmployeeCode)
		if err != nil {
			return err
		}
		if byCode != nil && (account == nil || byCode.ID != account.ID) {
			return domain.ErrEmployeeCodeExists
		}

		if err := tx.Employees.Create(ctx, emp); err != nil {
			return err
		}

		if account != nil {
			// la cuenta existente conserva su código y contraseña
			if err := tx.Users.SetLinkedEmployee(ctx, account.ID, &emp.ID); err != nil {
				return err
			}
			resp.UserID, resp.EmployeeCode = account.ID, account.EmployeeCode
			return nil
		}

		user := &entity.User{
			ID:               uuid.New().String(),
			Name:             name,
			Email:            email,
			PasswordHash:     hash,
			EmployeeCode:     in.EmployeeCode,
			LinkedEmployeeID: &emp.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		resp.UserID, resp.EmployeeCode, resp.UserCreated = user.ID, user.EmployeeCode, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("actor", actor.UserID).
		Str("employee_id", emp.ID).
		Bool("cuenta_nueva", resp.UserCreated).
		Msg("empleado creado")
	resp.Employee = dto.ToEmployeeResponse(emp)
	return resp, nil
}

// List: el admin ve todos los activos; el resto solo su propio empleado (o nada).
func (uc *EmployeeUseCase) List(ctx context.Context, actor policy.Actor) ([]dto.EmployeeResponse, error) {
	if uc.policy.CanManageRoster(actor) {
		list, err := uc.employees.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return dto.ToEmployeeResponses(list), nil
	}
	if actor.LinkedEmployeeID == "" {
		return []dto.EmployeeResponse{}, nil
	}
	emp, err := uc.employees.GetByID(ctx, actor.LinkedEmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.IsActive {
		return []dto.EmployeeResponse{}, nil
	}
	return []dto.EmployeeResponse{dto.ToEmployeeResponse(emp)}, nil
}

// ListDeleted empleados dados de baja (solo admin).
func (uc *EmployeeUseCase) ListDeleted(ctx context.Context, actor policy.Actor) ([]dto.EmployeeResponse, error) {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return nil, err
	}
	list, err := uc.employees.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToEmployeeResponses(list), nil
}

// Details empleado con su código de cuenta y estadísticas históricas (solo admin).
func (uc *EmployeeUseCase) Details(ctx context.Context, actor policy.Actor, id string) (*dto.EmployeeDetailsResponse, error) {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return nil, err
	}
	emp, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	stats, err := uc.attendance.Stats(ctx, emp.ID, nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployeeDetailsResponse{
		Employee: dto.ToEmployeeResponse(emp),
		Stats:    dto.ToStatsResponse(stats),
	}
	account, err := uc.users.GetByLinkedEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	if account == nil && emp.IsActive {
		if account, err = uc.users.GetByEmail(ctx, emp.Email); err != nil {
			return nil, err
		}
	}
	if account != nil {
		resp.EmployeeCode = account.EmployeeCode
	}
	return resp, nil
}

// SoftDelete da de baja al empleado y desvincula su cuenta; el historial se conserva.
func (uc *EmployeeUseCase) SoftDelete(ctx context.Context, actor policy.Actor, id string) error {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return err
	}
	now := uc.now()
	err := uc.tx.Run(ctx, func(tx repository.AttendanceTx) error {
		if err := tx.Employees.SoftDelete(ctx, id, now); err != nil {
			return err
		}
		account, err := tx.Users.GetByLinkedEmployee(ctx, id)
		if err != nil {
			return err
		}
		if account != nil {
			return tx.Users.SetLinkedEmployee(ctx, account.ID, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.UserID).Str("employee_id", id).Msg("empleado dado de baja")
	return nil
}

// OverrideStatus corrige el estado desnormalizado del empleado (solo admin).
// No toca los registros de asistencia.
func (uc *EmployeeUseCase) OverrideStatus(ctx context.Context, actor policy.Actor, id string, in dto.UpdateEmployeeStatusRequest) (*dto.EmployeeResponse, error) {
	if err := uc.policy.AuthorizeRoster(actor); err != nil {
		return nil, err
	}
	status := entity.AttendanceStatus(in.Status)
	if !status.Markable() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	emp, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.IsActive {
		return nil, domain.ErrEmployeeNotFound
	}
	now := uc.now()
	if err := uc.employees.UpdateStatus(ctx, id, entity.EmployeeStatus(status), now); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.UserID).Str("employee_id", id).Str("status", in.Status).Msg("estado de empleado corregido")

	emp.Status = entity.EmployeeStatus(status)
	emp.UpdatedAt = now
	resp := dto.ToEmployeeResponse(emp)
	return &resp, nil
}
