package attendance

import (
	"context"
	"time"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// Report datos del informe PDF de asistencia.
type Report struct {
	Title       string
	Scope       string
	From, To    *time.Time
	GeneratedAt time.Time
	GeneratedBy string
	Records     []*entity.AttendanceRecord
	Stats       entity.AttendanceStats
}

// ReportPDFGenerator puerto para renderizar el informe (infraestructura: maroto).
type ReportPDFGenerator interface {
	GenerateAttendanceReport(ctx context.Context, r Report) ([]byte, error)
}

// DecisionRecorder cuenta los resultados de la política (métricas). Puede ser nil.
type DecisionRecorder interface {
	RecordDecision(operation, outcome string)
}
