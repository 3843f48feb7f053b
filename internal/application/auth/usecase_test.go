package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/attendly-api/internal/application/auth"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/infrastructure/memory"
	"github.com/jhoicas/attendly-api/pkg/jwt"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Employees(), policy.NewRules(time.UTC),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "attendly-test"}, logger.Nop())
	return uc, store
}

func addEmployee(t *testing.T, store *memory.Store, id, email string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Employees().Create(context.Background(), &entity.Employee{
		ID: id, Name: "Empleado", Email: email, Department: "Ops",
		Status: entity.EmployeeUnmarked, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestValidEmployeeCode(t *testing.T) {
	assert.True(t, auth.ValidEmployeeCode("012345"))
	assert.False(t, auth.ValidEmployeeCode("12345"))
	assert.False(t, auth.ValidEmployeeCode("1234567"))
	assert.False(t, auth.ValidEmployeeCode("12a456"))
	assert.False(t, auth.ValidEmployeeCode("１２３４５６"))
}

func TestSignup_VinculaPorEmail(t *testing.T) {
	uc, store := newAuth(t)
	addEmployee(t, store, "e-1", "ana@example.com")

	user, err := uc.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "  ANA@Example.com ", Password: "secreto1", EmployeeCode: "100001",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	require.NotNil(t, user.LinkedEmployeeID)
	assert.Equal(t, "e-1", *user.LinkedEmployeeID)
	assert.False(t, user.IsAdmin)
}

func TestSignup_Duplicados(t *testing.T) {
	uc, _ := newAuth(t)
	in := dto.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto1", EmployeeCode: "100001"}
	_, err := uc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	in.Email = "otra@example.com"
	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmployeeCodeExists)

	in.EmployeeCode = "abc"
	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConUsuario(t *testing.T) {
	uc, _ := newAuth(t)
	created, err := uc.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", EmployeeCode: "100001",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{EmployeeCode: "100001", Password: "secreto1"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	_, err = uc.Login(context.Background(), dto.LoginRequest{EmployeeCode: "100001", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), dto.LoginRequest{EmployeeCode: "999999", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, auth.IsCredentialError(err))
}

// Un empleado creado después del registro se vincula en la siguiente resolución.
func TestResolveActor_VinculoTardioYBaja(t *testing.T) {
	uc, store := newAuth(t)
	user, err := uc.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", EmployeeCode: "100001",
	})
	require.NoError(t, err)

	actor, err := uc.ResolveActor(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, actor.LinkedEmployeeID)

	addEmployee(t, store, "e-1", "ana@example.com")
	actor, err = uc.ResolveActor(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "e-1", actor.LinkedEmployeeID)

	require.NoError(t, store.Employees().SoftDelete(context.Background(), "e-1", time.Now()))
	actor, err = uc.ResolveActor(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, actor.LinkedEmployeeID)

	stored, err := store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsLinked())

	_, err = uc.ResolveActor(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", EmployeeCode: "100001",
	})
	require.NoError(t, err)

	require.NoError(t, uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{EmployeeCode: "100001", NewPassword: "nueva123"}))
	_, err = uc.Login(context.Background(), dto.LoginRequest{EmployeeCode: "100001", Password: "nueva123"})
	assert.NoError(t, err)

	err = uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{EmployeeCode: "200002", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	err = uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{EmployeeCode: "100001", NewPassword: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPermissions(t *testing.T) {
	uc, store := newAuth(t)
	addEmployee(t, store, "e-1", "ana@example.com")

	emp, err := uc.Permissions(context.Background(), policy.Actor{UserID: "u", Email: "ana@example.com", LinkedEmployeeID: "e-1"})
	require.NoError(t, err)
	assert.True(t, emp.MarkOwnAttendance.Allowed)
	assert.False(t, emp.ManageRoster.Allowed)
	assert.Equal(t, policy.KindUnauthorized, emp.ManageRoster.Code)
	assert.False(t, emp.ViewAllRecords.Allowed)

	admin, err := uc.Permissions(context.Background(), policy.Actor{UserID: "a", Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, admin.ManageRoster.Allowed)
	assert.True(t, admin.ViewAllRecords.Allowed)
	assert.False(t, admin.MarkOwnAttendance.Allowed)
}

func TestEnsureAdmin(t *testing.T) {
	uc, store := newAuth(t)

	user, created, err := uc.EnsureAdmin(context.Background(), auth.AdminSeed{
		Email: "Admin@Example.com", Password: "admin123", EmployeeCode: "900001",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "Administrador", user.Name)

	// segunda ejecución: idempotente
	again, created, err := uc.EnsureAdmin(context.Background(), auth.AdminSeed{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	// una cuenta normal se promueve sin tocar la contraseña
	ana, err := uc.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", EmployeeCode: "100001",
	})
	require.NoError(t, err)
	_, created, err = uc.EnsureAdmin(context.Background(), auth.AdminSeed{Email: "ana@example.com", Password: "ignorada"})
	require.NoError(t, err)
	assert.False(t, created)
	stored, err := store.Users().GetByID(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
	_, err = uc.Login(context.Background(), dto.LoginRequest{EmployeeCode: "100001", Password: "secreto1"})
	assert.NoError(t, err)

	_, _, err = uc.EnsureAdmin(context.Background(), auth.AdminSeed{Email: "nuevo@example.com", Password: "admin123", EmployeeCode: "100001"})
	assert.ErrorIs(t, err, domain.ErrEmployeeCodeExists)
}
