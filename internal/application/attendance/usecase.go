package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

// MaxListLimit tope de registros por consulta.
const MaxListLimit = 1000

// Config parámetros del caso de uso.
type Config struct {
	Location     *time.Location // define el día civil
	DefaultLimit int
}

// AttendanceUseCase marcado, salida, consultas e informes de asistencia.
// Cada decisión pasa por la política; aquí solo se lee la foto y se persiste el resultado.
type AttendanceUseCase struct {
	tx         repository.TxRunner
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	policy     policy.AttendancePolicy
	pdf        ReportPDFGenerator
	recorder   DecisionRecorder
	cfg        Config
	log        *logger.Logger
	now        func() time.Time
}

// NewAttendanceUseCase construye el caso de uso. recorder puede ser nil.
func NewAttendanceUseCase(
	tx repository.TxRunner,
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	p policy.AttendancePolicy,
	pdf ReportPDFGenerator,
	recorder DecisionRecorder,
	cfg Config,
	log *logger.Logger,
) *AttendanceUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 500
	}
	return &AttendanceUseCase{
		tx:         tx,
		employees:  employees,
		attendance: attendance,
		policy:     p,
		pdf:        pdf,
		recorder:   recorder,
		cfg:        cfg,
		log:        log.Named("attendance"),
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AttendanceUseCase) WithClock(now func() time.Time) *AttendanceUseCase {
	uc.now = now
	return uc
}

func targetEmployee(actor policy.Actor, requested string) string {
	if requested != "" {
		return requested
	}
	return actor.LinkedEmployeeID
}

// Mark registra el primer estado del día y actualiza el estado del empleado en la misma transacción.
func (uc *AttendanceUseCase) Mark(ctx context.Context, actor policy.Actor, in dto.MarkAttendanceRequest) (*dto.AttendanceRecordResponse, error) {
	status := entity.AttendanceStatus(in.Status)
	employeeID := targetEmployee(actor, in.EmployeeID)
	now := uc.now()

	var created *entity.AttendanceRecord
	err := uc.tx.Run(ctx, func(tx repository.AttendanceTx) error {
		emp, err := uc.loadTarget(ctx, tx.Employees, employeeID)
		if err != nil {
			return err
		}
		if err := uc.policy.AuthorizeMutation(actor, emp); err != nil {
			return err
		}
		existing, err := tx.Attendance.GetForDate(ctx, emp.ID, entity.DateOf(now, uc.cfg.Location))
		if err != nil {
			return err
		}
		rec, err := uc.policy.MarkAttendance(emp.ID, status, now, existing)
		if err != nil {
			return err
		}
		rec.ID = uuid.New().String()
		rec.EmployeeName = emp.Name

		if err := tx.Attendance.Create(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// otro marcado ganó la carrera entre la lectura y la inserción
				return policy.Deny(policy.KindAlreadyMarked, "la asistencia ya fue registrada hoy")
			}
			return err
		}
		if err := tx.Employees.UpdateStatus(ctx, emp.ID, policy.EmployeeStatusAfter(rec), now); err != nil {
			return err
		}
		created = rec
		return nil
	})
	uc.record("mark", err)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("actor", actor.UserID).
		Str("employee_id", created.EmployeeID).
		Str("status", string(created.Status)).
		Msg("asistencia marcada")
	resp := dto.ToAttendanceRecordResponse(created)
	return &resp, nil
}

// CheckOut cierra el día del empleado y refleja checked_out en su estado.
func (uc *AttendanceUseCase) CheckOut(ctx context.Context, actor policy.Actor, in dto.CheckOutRequest) (*dto.AttendanceRecordResponse, error) {
	employeeID := targetEmployee(actor, in.EmployeeID)
	now := uc.now()

	var closed *entity.AttendanceRecord
	err := uc.tx.Run(ctx, func(tx repository.AttendanceTx) error {
		emp, err := uc.loadTarget(ctx, tx.Employees, employeeID)
		if err != nil {
			return err
		}
		if err := uc.policy.AuthorizeMutation(actor, emp); err != nil {
			return err
		}
		existing, err := tx.Attendance.GetForDate(ctx, emp.ID, entity.DateOf(now, uc.cfg.Location))
		if err != nil {
			return err
		}
		rec, err := uc.policy.CheckOut(emp.ID, now, existing)
		if err != nil {
			return err
		}
		if err := tx.Attendance.CloseDay(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return policy.Deny(policy.KindInvalidTransition, "la salida ya fue registrada")
			}
			return err
		}
		if err := tx.Employees.UpdateStatus(ctx, emp.ID, policy.EmployeeStatusAfter(rec), now); err != nil {
			return err
		}
		closed = rec
		return nil
	})
	uc.record("check_out", err)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("actor", actor.UserID).Str("employee_id", closed.EmployeeID).Msg("salida registrada")
	resp := dto.ToAttendanceRecordResponse(closed)
	return &resp, nil
}

// loadTarget lee el empleado objetivo; nil si no hay ID o no existe (la política lo deniega).
func (uc *AttendanceUseCase) loadTarget(ctx context.Context, repo repository.EmployeeRepository, id string) (*entity.Employee, error) {
	if id == "" {
		return nil, nil
	}
	return repo.GetByID(ctx, id)
}

func (uc *AttendanceUseCase) record(op string, err error) {
	if uc.recorder == nil {
		return
	}
	outcome := "allowed"
	if err != nil {
		outcome = "error"
		if d, ok := policy.AsDenial(err); ok {
			outcome = strings.ToLower(string(d.Kind))
		} else if errors.Is(err, domain.ErrInvalidInput) {
			outcome = "invalid_input"
		}
	}
	uc.recorder.RecordDecision(op, outcome)
}

// ListQuery filtros ya interpretados.
type ListQuery struct {
	Scope    policy.Scope
	From, To *time.Time
	Limit    int
}

// ParseListQuery interpreta los parámetros de consulta.
func ParseListQuery(q dto.AttendanceQuery) (ListQuery, error) {
	scope, err := policy.ParseScope(q.Scope)
	if err != nil {
		return ListQuery{}, err
	}
	out := ListQuery{Scope: scope, Limit: q.Limit}
	if out.From, err = parseDate(q.From); err != nil {
		return ListQuery{}, err
	}
	if out.To, err = parseDate(q.To); err != nil {
		return ListQuery{}, err
	}
	if out.From != nil && out.To != nil && out.To.Before(*out.From) {
		return ListQuery{}, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return out, nil
}

// ParseDate interpreta una fecha YYYY-MM-DD como día civil.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// filterFor aplica el alcance efectivo: own sin empleado vinculado no ve nada.
func (uc *AttendanceUseCase) filterFor(actor policy.Actor, q ListQuery) (policy.Scope, repository.AttendanceFilter, bool) {
	scope := uc.policy.EffectiveScope(actor, q.Scope)
	limit := q.Limit
	if limit <= 0 {
		limit = uc.cfg.DefaultLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	f := repository.AttendanceFilter{From: q.From, To: q.To, Limit: limit}
	if scope == policy.ScopeOwn {
		if actor.LinkedEmployeeID == "" {
			return scope, f, false
		}
		f.EmployeeID = actor.LinkedEmployeeID
	}
	return scope, f, true
}

// List registros visibles para el actor. Pedir all sin ser admin degrada a own.
func (uc *AttendanceUseCase) List(ctx context.Context, actor policy.Actor, q ListQuery) (*dto.AttendanceListResponse, error) {
	scope, f, ok := uc.filterFor(actor, q)
	resp := &dto.AttendanceListResponse{Scope: string(scope), Records: []dto.AttendanceRecordResponse{}}
	if !ok {
		return resp, nil
	}
	list, err := uc.attendance.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp.Records = dto.ToAttendanceRecordResponses(list)
	resp.Count = len(resp.Records)
	return resp, nil
}

// ListByDate registros visibles de una fecha civil.
func (uc *AttendanceUseCase) ListByDate(ctx context.Context, actor policy.Actor, date time.Time, scope policy.Scope) (*dto.AttendanceListResponse, error) {
	return uc.List(ctx, actor, ListQuery{Scope: scope, From: &date, To: &date})
}

// Summary estadísticas del mes (por defecto el actual) del empleado propio.
func (uc *AttendanceUseCase) Summary(ctx context.Context, actor policy.Actor, month string) (*dto.SummaryResponse, error) {
	if actor.LinkedEmployeeID == "" {
		return nil, policy.Deny(policy.KindNotFound, "no hay un empleado activo vinculado a la cuenta")
	}
	first, err := uc.monthStart(month)
	if err != nil {
		return nil, err
	}
	last := first.AddDate(0, 1, -1)

	stats, err := uc.attendance.Stats(ctx, actor.LinkedEmployeeID, &first, &last)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		EmployeeID: actor.LinkedEmployeeID,
		Month:      first.Format("2006-01"),
		Stats:      dto.ToStatsResponse(stats),
	}, nil
}

func (uc *AttendanceUseCase) monthStart(month string) (time.Time, error) {
	if month == "" {
		today := entity.DateOf(uc.now(), uc.cfg.Location)
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: mes %q (YYYY-MM)", domain.ErrInvalidInput, month)
	}
	return t, nil
}

// ExportPDF informe PDF con los registros visibles para el actor y sus totales.
func (uc *AttendanceUseCase) ExportPDF(ctx context.Context, actor policy.Actor, q ListQuery) ([]byte, string, error) {
	scope, f, ok := uc.filterFor(actor, q)
	report := Report{
		Title:       "Informe de asistencia",
		Scope:       string(scope),
		From:        q.From,
		To:          q.To,
		GeneratedAt: uc.now().In(uc.cfg.Location),
		GeneratedBy: actor.Email,
	}
	if ok {
		list, err := uc.attendance.List(ctx, f)
		if err != nil {
			return nil, "", err
		}
		stats, err := uc.attendance.Stats(ctx, f.EmployeeID, f.From, f.To)
		if err != nil {
			return nil, "", err
		}
		report.Records, report.Stats = list, stats
	}

	pdfBytes, err := uc.pdf.GenerateAttendanceReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("generar informe: %w", err)
	}
	filename := fmt.Sprintf("asistencia-%s-%s.pdf", scope, report.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
