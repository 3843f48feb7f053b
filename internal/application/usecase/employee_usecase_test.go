package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/application/usecase"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/infrastructure/memory"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

var (
	admin    = policy.Actor{UserID: "admin", Email: "admin@example.com", IsAdmin: true}
	employee = policy.Actor{UserID: "u-ana", Email: "ana@example.com"}
)

func newEmployeeUC(t *testing.T) (*usecase.EmployeeUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := usecase.NewEmployeeUseCase(memory.NewTxRunner(store), store.Users(), store.Employees(), store.Attendance(),
		policy.NewRules(time.UTC), "inicial123", logger.Nop())
	return uc, store
}

func createReq(email, code string) dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{Name: "Ana Pérez", Email: email, Department: "Ventas", EmployeeCode: code}
}

func TestCreate_CreaEmpleadoYCuenta(t *testing.T) {
	uc, store := newEmployeeUC(t)

	out, err := uc.Create(context.Background(), admin, createReq("Ana@Example.com", "100001"))
	require.NoError(t, err)
	assert.True(t, out.UserCreated)
	assert.Equal(t, "100001", out.EmployeeCode)
	assert.Equal(t, "ana@example.com", out.Employee.Email)
	assert.Equal(t, string(entity.EmployeeUnmarked), out.Employee.Status)

	user, err := store.Users().GetByID(context.Background(), out.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.LinkedEmployeeID)
	assert.Equal(t, out.Employee.ID, *user.LinkedEmployeeID)
	assert.False(t, user.IsAdmin)
}

func TestCreate_VinculaCuentaExistente(t *testing.T) {
	uc, store := newEmployeeUC(t)
	now := time.Now()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u-ana", Name: "Ana", Email: "ana@example.com", PasswordHash: "x", EmployeeCode: "555555",
		CreatedAt: now, UpdatedAt: now,
	}))

	// el código de la petición se ignora: la cuenta conserva el suyo
	out, err := uc.Create(context.Background(), admin, createReq("ana@example.com", "100001"))
	require.NoError(t, err)
	assert.False(t, out.UserCreated)
	assert.Equal(t, "u-ana", out.UserID)
	assert.Equal(t, "555555", out.EmployeeCode)

	user, err := store.Users().GetByID(context.Background(), "u-ana")
	require.NoError(t, err)
	require.NotNil(t, user.LinkedEmployeeID)
	assert.Equal(t, out.Employee.ID, *user.LinkedEmployeeID)
}

func TestCreate_Conflictos(t *testing.T) {
	uc, _ := newEmployeeUC(t)
	_, err := uc.Create(context.Background(), admin, createReq("ana@example.com", "100001"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), admin, createReq("ana@example.com", "100002"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(context.Background(), admin, createReq("luis@example.com", "100001"))
	assert.ErrorIs(t, err, domain.ErrEmployeeCodeExists)

	// la transacción fallida no deja empleados a medias
	list, err := uc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_SoloAdmin(t *testing.T) {
	uc, _ := newEmployeeUC(t)
	_, err := uc.Create(context.Background(), employee, createReq("luis@example.com", "100002"))
	d, ok := policy.AsDenial(err)
	require.True(t, ok)
	assert.Equal(t, policy.KindUnauthorized, d.Kind)
}

func TestList_EmpleadoVeSoloElSuyo(t *testing.T) {
	uc, _ := newEmployeeUC(t)
	ana, err := uc.Create(context.Background(), admin, createReq("ana@example.com", "100001"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), admin, createReq("luis@example.com", "100002"))
	require.NoError(t, err)

	linked := employee
	linked.LinkedEmployeeID = ana.Employee.ID
	own, err := uc.List(context.Background(), linked)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, ana.Employee.ID, own[0].ID)

	none, err := uc.List(context.Background(), employee)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := uc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSoftDelete_DesvinculaYConservaDetalle(t *testing.T) {
	uc, store := newEmployeeUC(t)
	out, err := uc.Create(context.Background(), admin, createReq("ana@example.com", "100001"))
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(context.Background(), admin, out.Employee.ID))
	assert.ErrorIs(t, uc.SoftDelete(context.Background(), admin, out.Employee.ID), domain.ErrEmployeeNotFound)

	user, err := store.Users().GetByID(context.Background(), out.UserID)
	require.NoError(t, err)
	assert.False(t, user.IsLinked())

	deleted, err := uc.ListDeleted(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.NotNil(t, deleted[0].DeletedAt)

	details, err := uc.Details(context.Background(), admin, out.Employee.ID)
	require.NoError(t, err)
	assert.False(t, details.Employee.IsActive)

	// el email queda libre para un alta nueva
	_, err = uc.Create(context.Background(), admin, createReq("ana@example.com", "100009"))
	assert.NoError(t, err)
}

func TestDetails_NoEncontrado(t *testing.T) {
	uc, _ := newEmployeeUC(t)
	_, err := uc.Details(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestOverrideStatus(t *testing.T) {
	uc, store := newEmployeeUC(t)
	out, err := uc.Create(context.Background(), admin, createReq("ana@example.com", "100001"))
	require.NoError(t, err)

	resp, err := uc.OverrideStatus(context.Background(), admin, out.Employee.ID, dto.UpdateEmployeeStatusRequest{Status: "absent"})
	require.NoError(t, err)
	assert.Equal(t, "absent", resp.Status)

	emp, err := store.Employees().GetByID(context.Background(), out.Employee.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeAbsent, emp.Status)

	// no genera registros de asistencia
	stats, err := store.Attendance().Stats(context.Background(), out.Employee.ID, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	_, err = uc.OverrideStatus(context.Background(), admin, out.Employee.ID, dto.UpdateEmployeeStatusRequest{Status: "unmarked"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.OverrideStatus(context.Background(), employee, out.Employee.ID, dto.UpdateEmployeeStatusRequest{Status: "late"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
