package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
)

// AdminSeed datos del administrador inicial.
type AdminSeed struct {
	Name         string
	Email        string
	Password     string
	EmployeeCode string
}

// EnsureAdmin promueve la cuenta con el email indicado o la crea con is_admin.
// Una cuenta existente conserva su contraseña y su código. Devuelve true si la creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, in AdminSeed) (*entity.User, bool, error) {
	email := policy.NormalizeEmail(in.Email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email del admin requerido", domain.ErrInvalidInput)
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if !existing.IsAdmin {
			if err := uc.users.SetAdmin(ctx, existing.ID, true); err != nil {
				return nil, false, err
			}
			existing.IsAdmin = true
			uc.log.Info().Str("user_id", existing.ID).Msg("cuenta promovida a administrador")
		}
		return existing, false, nil
	}

	if !ValidEmployeeCode(in.EmployeeCode) || len(in.Password) < MinPasswordLength {
		return nil, false, fmt.Errorf("%w: el admin nuevo requiere código de 6 dígitos y contraseña", domain.ErrInvalidInput)
	}
	if taken, err := uc.users.GetByEmployeeCode(ctx, in.EmployeeCode); err != nil {
		return nil, false, err
	} else if taken != nil {
		return nil, false, domain.ErrEmployeeCodeExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Administrador"
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		EmployeeCode: in.EmployeeCode,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if emp, err := uc.employees.GetActiveByEmail(ctx, email); err != nil {
		return nil, false, err
	} else if emp != nil {
		user.LinkedEmployeeID = &emp.ID
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("administrador creado")
	return user, true, nil
}
