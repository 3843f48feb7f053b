package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
	"github.com/jhoicas/attendly-api/pkg/jwt"
	"github.com/jhoicas/attendly-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

var employeeCodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// ValidEmployeeCode indica si code tiene exactamente 6 dígitos.
func ValidEmployeeCode(code string) bool {
	return employeeCodeRe.MatchString(code)
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, reset y resolución del actor.
type AuthUseCase struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	policy    policy.AttendancePolicy
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	p policy.AttendancePolicy,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		employees: employees,
		policy:    p,
		jwtCfg:    jwtCfg,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

// HashPassword aplica bcrypt con el coste por defecto.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Signup crea la cuenta. Si ya existe un empleado activo con el mismo email, queda vinculada.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	email := policy.NormalizeEmail(in.Email)
	if in.Name == "" || email == "" || !ValidEmployeeCode(in.EmployeeCode) || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, err := uc.users.GetByEmployeeCode(ctx, in.EmployeeCode); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmployeeCodeExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		EmployeeCode: in.EmployeeCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	emp, err := uc.employees.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		user.LinkedEmployeeID = &emp.ID
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Bool("vinculado", user.IsLinked()).Msg("cuenta registrada")
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Login verifica código/contraseña, resuelve el vínculo con Employee y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmployeeCode(ctx, in.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if _, err := uc.resolveLink(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Subject{
		UserID:       user.ID,
		EmployeeCode: user.EmployeeCode,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      dto.ToUserResponse(user),
	}, nil
}

// ResetPassword cambia la contraseña identificando la cuenta solo por código de empleado.
// No hay segundo factor: se registra cada uso a nivel warn.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if !ValidEmployeeCode(in.EmployeeCode) || len(in.NewPassword) < MinPasswordLength {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmployeeCode(ctx, in.EmployeeCode)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	uc.log.Warn().Str("user_id", user.ID).Msg("contraseña restablecida solo con código de empleado")
	return nil
}

// ResolveActor lee el usuario en cada petición: el flag de admin y el vínculo
// siempre salen de la base, no del token.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, userID string) (policy.Actor, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return policy.Actor{}, err
	}
	if user == nil {
		return policy.Actor{}, domain.ErrUnauthorized
	}
	linked, err := uc.resolveLink(ctx, user)
	if err != nil {
		return policy.Actor{}, err
	}
	return policy.Actor{
		UserID:           user.ID,
		Email:            user.Email,
		IsAdmin:          user.IsAdmin,
		LinkedEmployeeID: linked,
	}, nil
}

// resolveLink valida el vínculo guardado o lo establece por email. Devuelve el ID
// del empleado activo vinculado o "" si no hay.
func (uc *AuthUseCase) resolveLink(ctx context.Context, user *entity.User) (string, error) {
	if user.IsLinked() {
		emp, err := uc.employees.GetByID(ctx, *user.LinkedEmployeeID)
		if err != nil {
			return "", err
		}
		if emp != nil && emp.IsActive && policy.SameEmail(emp.Email, user.Email) {
			return emp.ID, nil
		}
		if err := uc.users.SetLinkedEmployee(ctx, user.ID, nil); err != nil {
			return "", err
		}
		user.LinkedEmployeeID = nil
	}

	emp, err := uc.employees.GetActiveByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if emp == nil {
		return "", nil
	}
	if err := uc.users.SetLinkedEmployee(ctx, user.ID, &emp.ID); err != nil {
		return "", err
	}
	user.LinkedEmployeeID = &emp.ID
	uc.log.Debug().Str("user_id", user.ID).Str("employee_id", emp.ID).Msg("cuenta vinculada a empleado")
	return emp.ID, nil
}

// Me devuelve el usuario autenticado, su empleado y las decisiones de la política.
func (uc *AuthUseCase) Me(ctx context.Context, actor policy.Actor) (*dto.MeResponse, error) {
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	emp, err := uc.linkedEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{
		User:        dto.ToUserResponse(user),
		Permissions: uc.permissions(actor, emp),
	}
	if emp != nil {
		e := dto.ToEmployeeResponse(emp)
		resp.Employee = &e
	}
	return resp, nil
}

// Permissions decisiones de la política para el actor.
func (uc *AuthUseCase) Permissions(ctx context.Context, actor policy.Actor) (*dto.PermissionsResponse, error) {
	emp, err := uc.linkedEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}
	p := uc.permissions(actor, emp)
	return &p, nil
}

func (uc *AuthUseCase) linkedEmployee(ctx context.Context, actor policy.Actor) (*entity.Employee, error) {
	if actor.LinkedEmployeeID == "" {
		return nil, nil
	}
	return uc.employees.GetByID(ctx, actor.LinkedEmployeeID)
}

func (uc *AuthUseCase) permissions(actor policy.Actor, emp *entity.Employee) dto.PermissionsResponse {
	viewAll := policy.Allow()
	if !uc.policy.CanViewRecords(actor, policy.ScopeAll) {
		viewAll = policy.DecisionOf(policy.Deny(policy.KindUnauthorized, "solo administradores ven todos los registros"))
	}
	return dto.PermissionsResponse{
		ViewAllRecords:    viewAll,
		ManageRoster:      policy.DecisionOf(uc.policy.AuthorizeRoster(actor)),
		MarkOwnAttendance: policy.DecisionOf(uc.policy.AuthorizeMutation(actor, emp)),
	}
}

// IsCredentialError indica si err debe responderse como 401.
func IsCredentialError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUnauthorized)
}
