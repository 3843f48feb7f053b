package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkedHours(t *testing.T) {
	in := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 20*time.Minute)

	r := &AttendanceRecord{CheckIn: &in, CheckOut: &out}
	h, ok := r.WorkedHours()
	assert.True(t, ok)
	assert.Equal(t, "8.33", h.StringFixed(2))

	r.CheckOut = nil
	_, ok = r.WorkedHours()
	assert.False(t, ok)
}

func TestStatsPercentage(t *testing.T) {
	assert.True(t, AttendanceStats{}.Percentage().IsZero())

	s := AttendanceStats{Total: 3, Present: 1, Late: 1, Absent: 1}
	assert.Equal(t, "66.67", s.Percentage().StringFixed(2))
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC del día 4 sigue siendo el día 3 en UTC-5
	ts := time.Date(2025, 3, 4, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), DateOf(ts, loc))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, AttendanceLate.Markable())
	assert.False(t, AttendanceCheckedOut.Markable())
	assert.True(t, EmployeeUnmarked.Valid())
	assert.False(t, EmployeeStatus("on_leave").Valid())
}
