package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = Actor{UserID: "u-admin", Email: "a@x.com", IsAdmin: true}
	employee = Actor{UserID: "u-emp", Email: "b@x.com"}
	nine     = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
)

func activeEmployee(id, email string) *entity.Employee {
	return &entity.Employee{ID: id, Email: email, IsActive: true, Status: entity.EmployeeUnmarked}
}

func requireDenial(t *testing.T, err error, kind Kind) {
	t.Helper()
	d, ok := AsDenial(err)
	require.True(t, ok, "se esperaba Denial, se obtuvo %v", err)
	assert.Equal(t, kind, d.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCanViewRecords(t *testing.T) {
	p := NewRules(nil)

	assert.True(t, p.CanViewRecords(admin, ScopeAll))
	assert.True(t, p.CanViewRecords(admin, ScopeOwn))
	assert.False(t, p.CanViewRecords(employee, ScopeAll))
	assert.True(t, p.CanViewRecords(employee, ScopeOwn))
	assert.False(t, p.CanViewRecords(admin, Scope("everyone")))
}

func TestEffectiveScope_FallsBackToOwn(t *testing.T) {
	p := NewRules(nil)

	assert.Equal(t, ScopeOwn, p.EffectiveScope(employee, ScopeAll))
	assert.Equal(t, ScopeAll, p.EffectiveScope(admin, ScopeAll))
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeOwn, s)

	_, err = ParseScope("team")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutación propia
// ──────────────────────────────────────────────────────────────────────────────

func TestCanMutateAttendance_EmailMatchRegardlessOfAdmin(t *testing.T) {
	p := NewRules(nil)
	self := activeEmployee("e-b", "  B@X.com ")

	assert.True(t, p.CanMutateAttendance(employee, self))
	assert.True(t, p.CanMutateAttendance(Actor{Email: "b@x.com", IsAdmin: true}, self))
	assert.False(t, p.CanMutateAttendance(admin, self))
	assert.False(t, p.CanMutateAttendance(Actor{Email: "c@x.com"}, self))
}

func TestCanMutateAttendance_FailsClosed(t *testing.T) {
	p := NewRules(nil)

	assert.False(t, p.CanMutateAttendance(employee, nil))
	assert.False(t, p.CanMutateAttendance(Actor{Email: ""}, activeEmployee("e", "")))

	inactive := activeEmployee("e-b", "b@x.com")
	inactive.IsActive = false
	assert.False(t, p.CanMutateAttendance(employee, inactive))
}

func TestAuthorizeMutation_AdminOnOtherEmployeeIsUnauthorized(t *testing.T) {
	p := NewRules(nil)

	err := p.AuthorizeMutation(admin, activeEmployee("e-b", "b@x.com"))
	requireDenial(t, err, KindUnauthorized)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorizeMutation_NoEmployeeIsNotFound(t *testing.T) {
	err := NewRules(nil).AuthorizeMutation(employee, nil)
	requireDenial(t, err, KindNotFound)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestNormalizeEmail_UnicodeFolding(t *testing.T) {
	assert.Equal(t, "strasse@x.com", NormalizeEmail(" STRASSE@X.COM "))
	assert.True(t, SameEmail("ÉLODIE@x.com", "élodie@X.com"))
	assert.False(t, SameEmail("", ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Marcado
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAttendance_PresentSetsCheckIn(t *testing.T) {
	rec, err := NewRules(nil).MarkAttendance("e-b", entity.AttendancePresent, nine, nil)
	require.NoError(t, err)

	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, nine, *rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
	assert.Equal(t, entity.AttendancePresent, rec.Status)
	assert.Equal(t, entity.AttendancePresent, rec.MarkedStatus)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), rec.Date)
}

func TestMarkAttendance_AbsentHasNoCheckIn(t *testing.T) {
	rec, err := NewRules(nil).MarkAttendance("e-b", entity.AttendanceAbsent, nine, nil)
	require.NoError(t, err)
	assert.Nil(t, rec.CheckIn)
	assert.Equal(t, entity.AttendanceAbsent, rec.Status)
}

func TestMarkAttendance_RejectsUnknownStatus(t *testing.T) {
	p := NewRules(nil)

	_, err := p.MarkAttendance("e-b", entity.AttendanceCheckedOut, nine, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.MarkAttendance("e-b", "holiday", nine, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAttendance_SecondMarkIsDeniedNotOverwritten(t *testing.T) {
	p := NewRules(nil)
	first, err := p.MarkAttendance("e-b", entity.AttendancePresent, nine, nil)
	require.NoError(t, err)

	for _, status := range []entity.AttendanceStatus{entity.AttendanceAbsent, entity.AttendancePresent, entity.AttendanceLate} {
		_, err := p.MarkAttendance("e-b", status, nine.Add(5*time.Minute), first)
		requireDenial(t, err, KindAlreadyMarked)
		assert.True(t, errors.Is(err, domain.ErrAlreadyMarked))
	}
	assert.Equal(t, entity.AttendancePresent, first.Status)
	assert.Equal(t, nine, *first.CheckIn)
}

func TestMarkAttendance_DeniedAfterCheckOut(t *testing.T) {
	p := NewRules(nil)
	first, _ := p.MarkAttendance("e-b", entity.AttendanceLate, nine, nil)
	closed, err := p.CheckOut("e-b", nine.Add(8*time.Hour), first)
	require.NoError(t, err)

	_, err = p.MarkAttendance("e-b", entity.AttendancePresent, nine.Add(9*time.Hour), closed)
	requireDenial(t, err, KindAlreadyMarked)
}

func TestMarkAttendance_DateFollowsLocation(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	late := time.Date(2025, 3, 4, 3, 30, 0, 0, time.UTC) // 22:30 del día 3 en COT

	rec, err := NewRules(bogota).MarkAttendance("e-b", entity.AttendanceLate, late, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), rec.Date)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckOut_WithoutMarkIsInvalidTransition(t *testing.T) {
	_, err := NewRules(nil).CheckOut("e-b", nine, nil)
	requireDenial(t, err, KindInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCheckOut_AfterAbsentIsDenied(t *testing.T) {
	p := NewRules(nil)
	absent, _ := p.MarkAttendance("e-b", entity.AttendanceAbsent, nine, nil)

	_, err := p.CheckOut("e-b", nine.Add(time.Hour), absent)
	requireDenial(t, err, KindInvalidTransition)
}

func TestCheckOut_TwiceSecondDenied(t *testing.T) {
	p := NewRules(nil)
	rec, _ := p.MarkAttendance("e-b", entity.AttendancePresent, nine, nil)
	t1 := nine.Add(8 * time.Hour)

	closed, err := p.CheckOut("e-b", t1, rec)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceCheckedOut, closed.Status)
	assert.Equal(t, entity.AttendancePresent, closed.MarkedStatus)
	require.NotNil(t, closed.CheckOut)
	assert.Equal(t, t1, *closed.CheckOut)

	// el registro de entrada no se modifica
	assert.Nil(t, rec.CheckOut)
	assert.Equal(t, entity.AttendancePresent, rec.Status)

	_, err = p.CheckOut("e-b", t1.Add(time.Minute), closed)
	requireDenial(t, err, KindInvalidTransition)
}

func TestCheckOut_BeforeCheckInIsDenied(t *testing.T) {
	p := NewRules(nil)
	rec, _ := p.MarkAttendance("e-b", entity.AttendancePresent, nine, nil)

	_, err := p.CheckOut("e-b", nine.Add(-time.Minute), rec)
	requireDenial(t, err, KindInvalidTransition)
}

func TestCheckOut_OtherEmployeesRecordIsDenied(t *testing.T) {
	p := NewRules(nil)
	rec, _ := p.MarkAttendance("e-a", entity.AttendancePresent, nine, nil)

	_, err := p.CheckOut("e-b", nine.Add(time.Hour), rec)
	requireDenial(t, err, KindInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Nómina y decisiones
// ──────────────────────────────────────────────────────────────────────────────

func TestRoster(t *testing.T) {
	p := NewRules(nil)

	assert.True(t, p.CanManageRoster(admin))
	assert.NoError(t, p.AuthorizeRoster(admin))
	assert.False(t, p.CanManageRoster(employee))
	requireDenial(t, p.AuthorizeRoster(employee), KindUnauthorized)
}

func TestDecisionOf(t *testing.T) {
	assert.Equal(t, Decision{Allowed: true}, DecisionOf(nil))

	d := DecisionOf(NewRules(nil).AuthorizeRoster(employee))
	assert.False(t, d.Allowed)
	assert.Equal(t, KindUnauthorized, d.Code)
	assert.NotEmpty(t, d.Reason)

	plain := DecisionOf(domain.ErrInvalidInput)
	assert.False(t, plain.Allowed)
	assert.Empty(t, plain.Code)
}

func TestEmployeeStatusAfter(t *testing.T) {
	assert.Equal(t, entity.EmployeeUnmarked, EmployeeStatusAfter(nil))
	assert.Equal(t, entity.EmployeeCheckedOut, EmployeeStatusAfter(&entity.AttendanceRecord{Status: entity.AttendanceCheckedOut}))
}
