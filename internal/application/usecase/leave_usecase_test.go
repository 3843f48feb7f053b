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
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/infrastructure/memory"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

func newLeaveUC(t *testing.T) (*usecase.LeaveUseCase, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := usecase.NewLeaveUseCase(memory.NewStore().Leaves(), policy.NewRules(time.UTC), logger.Nop()).
		WithClock(func() time.Time { return now })
	return uc, &now
}

func leaveReq(typ, from, to string) dto.CreateLeaveRequest {
	return dto.CreateLeaveRequest{Type: typ, StartDate: from, EndDate: to, Reason: "  control médico "}
}

func TestLeaveRequest_QuedaPendiente(t *testing.T) {
	uc, _ := newLeaveUC(t)

	out, err := uc.Request(context.Background(), employee, leaveReq("sick", "2026-03-12", "2026-03-14"))
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, employee.UserID, out.UserID)
	assert.Equal(t, 3, out.Days)
	assert.Equal(t, "control médico", out.Reason)
	assert.Nil(t, out.ReviewedBy)
}

func TestLeaveRequest_Validacion(t *testing.T) {
	uc, _ := newLeaveUC(t)
	ctx := context.Background()

	cases := map[string]dto.CreateLeaveRequest{
		"tipo desconocido": leaveReq("vacation", "2026-03-12", "2026-03-12"),
		"fecha inválida":   leaveReq("paid", "12/03/2026", "2026-03-12"),
		"rango invertido":  leaveReq("paid", "2026-03-14", "2026-03-12"),
		"rango excesivo":   leaveReq("paid", "2026-01-01", "2026-12-31"),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Request(ctx, employee, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	out, err := uc.Request(ctx, employee, leaveReq("casual", "2026-03-12", "2026-03-12"))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Days)
}

func TestLeaveHistory_SoloPropiasYRecientesPrimero(t *testing.T) {
	uc, now := newLeaveUC(t)
	ctx := context.Background()

	_, err := uc.Request(ctx, employee, leaveReq("sick", "2026-03-12", "2026-03-12"))
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = uc.Request(ctx, employee, leaveReq("paid", "2026-04-01", "2026-04-03"))
	require.NoError(t, err)
	_, err = uc.Request(ctx, admin, leaveReq("casual", "2026-03-20", "2026-03-20"))
	require.NoError(t, err)

	hist, err := uc.History(ctx, employee)
	require.NoError(t, err)
	require.Len(t, hist.Leaves, 2)
	assert.Equal(t, "paid", hist.Leaves[0].Type)
	assert.Equal(t, "sick", hist.Leaves[1].Type)

	empty, err := uc.History(ctx, policy.Actor{UserID: "sin-solicitudes"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Leaves)
	assert.Empty(t, empty.Leaves)
}

func TestLeaveResolve_SoloAdminYUnaVez(t *testing.T) {
	uc, _ := newLeaveUC(t)
	ctx := context.Background()

	req, err := uc.Request(ctx, employee, leaveReq("sick", "2026-03-12", "2026-03-13"))
	require.NoError(t, err)

	_, err = uc.Resolve(ctx, employee, req.ID, dto.ResolveLeaveRequest{Status: "approved"})
	d, ok := policy.AsDenial(err)
	require.True(t, ok)
	assert.Equal(t, policy.KindUnauthorized, d.Kind)

	_, err = uc.Resolve(ctx, admin, req.ID, dto.ResolveLeaveRequest{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Resolve(ctx, admin, req.ID, dto.ResolveLeaveRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	require.NotNil(t, out.ReviewedBy)
	assert.Equal(t, admin.UserID, *out.ReviewedBy)

	_, err = uc.Resolve(ctx, admin, req.ID, dto.ResolveLeaveRequest{Status: "rejected"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Resolve(ctx, admin, "no-existe", dto.ResolveLeaveRequest{Status: "rejected"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
