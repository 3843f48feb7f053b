package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueConstraint(t *testing.T) {
	err := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_employee_code_key"})
	name, ok := uniqueConstraint(err)
	assert.True(t, ok)
	assert.Equal(t, "users_employee_code_key", name)

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("boom")))
}

func TestWhereFilter(t *testing.T) {
	where, args := whereFilter("", nil, nil)
	assert.Empty(t, where)
	assert.Empty(t, args)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	where, args = whereFilter("e1", &from, &to)
	assert.Equal(t, " WHERE employee_id = $1 AND date >= $2 AND date <= $3", where)
	assert.Equal(t, []any{"e1", from, to}, args)
}

type countingObserver struct{ ops []string }

func (c *countingObserver) ObserveDB(op string, fn func() error) error {
	c.ops = append(c.ops, op)
	return fn()
}

func TestObserve(t *testing.T) {
	assert.NoError(t, observe(nil, "x", func() error { return nil }))

	obs := &countingObserver{}
	boom := errors.New("boom")
	assert.ErrorIs(t, observe(obs, "attendance.create", func() error { return boom }), boom)
	assert.Equal(t, []string{"attendance.create"}, obs.ops)
}

func TestSchemaEmbedded(t *testing.T) {
	sql, err := schemaFS.ReadFile("schema/001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(sql), "UNIQUE (employee_id, date)")
	assert.Contains(t, string(sql), "WHERE is_active")

	sql, err = schemaFS.ReadFile("schema/002_leave_requests.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(sql), "CHECK (end_date >= start_date)")
	assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS leave_requests")
}
