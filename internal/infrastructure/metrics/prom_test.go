package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	p := New(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(p.Middleware())
	app.Get("/api/employees/:id/details", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/employees/42/details", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	got := testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "/api/employees/:id/details", "404"))
	assert.Equal(t, float64(1), got)
}

func TestObserveDB_ClassifiesErrors(t *testing.T) {
	p := New(prometheus.NewRegistry())

	err := p.ObserveDB("attendance.create", func() error { return &pgconn.PgError{Code: "23505"} })
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.DBErrorsTotal.WithLabelValues("attendance.create", "unique_violation")))

	require.NoError(t, p.ObserveDB("attendance.list", func() error { return nil }))
}

func TestClassifyDBErr(t *testing.T) {
	assert.Equal(t, "deadlock", classifyDBErr(&pgconn.PgError{Code: "40P01"}))
	assert.Equal(t, "pg_42P01", classifyDBErr(&pgconn.PgError{Code: "42P01"}))
	assert.Equal(t, "timeout", classifyDBErr(errors.New("context deadline exceeded")))
	assert.Equal(t, "unknown", classifyDBErr(errors.New("boom")))
}

func TestRecordDecision(t *testing.T) {
	p := New(prometheus.NewRegistry())
	p.RecordDecision("mark", "already_marked")
	p.RecordDecision("mark", "already_marked")

	assert.Equal(t, float64(2), testutil.ToFloat64(p.Decisions.WithLabelValues("mark", "already_marked")))
}
