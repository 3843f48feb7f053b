package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/attendly-api/internal/application/attendance"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAttendanceReport(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	in := day.Add(9 * time.Hour)
	out := day.Add(17 * time.Hour)

	report := attendance.Report{
		Title:       "Informe de asistencia",
		Scope:       "all",
		From:        &day,
		To:          &day,
		GeneratedAt: out,
		GeneratedBy: "admin@x.com",
		Records: []*entity.AttendanceRecord{
			{ID: "r1", EmployeeName: "Bea", Date: day, CheckIn: &in, CheckOut: &out,
				Status: entity.AttendanceCheckedOut, MarkedStatus: entity.AttendancePresent},
			{ID: "r2", EmployeeName: "Carlos", Date: day,
				Status: entity.AttendanceAbsent, MarkedStatus: entity.AttendanceAbsent},
		},
		Stats: entity.AttendanceStats{Total: 2, Present: 1, Absent: 1, CheckedOut: 1},
	}

	b, err := NewReportGenerator(nil).GenerateAttendanceReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateAttendanceReport_Empty(t *testing.T) {
	b, err := NewReportGenerator(time.UTC).GenerateAttendanceReport(context.Background(), attendance.Report{Title: "Vacío"})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestPeriod(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "completo", period(nil, nil))
	assert.Equal(t, "01/03/2025", period(&a, &a))
	assert.Equal(t, "01/03/2025 - 31/03/2025", period(&a, &b))
	assert.Equal(t, "desde 01/03/2025", period(&a, nil))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Tarde", statusLabel(entity.AttendanceLate))
	assert.Equal(t, "otro", statusLabel("otro"))
}
