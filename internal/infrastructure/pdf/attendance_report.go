// Package pdf genera el informe de asistencia en PDF.
//
// Layout de la página A4 (horizontal):
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: título + alcance    │  periodo + fecha de emisión   │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES: días, presentes, tarde, ausentes, % y horas        │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Empleado | Entrada | Salida | Estado | Horas │
//	│  ──────────────────────────────────────────────────────────  │
//	│  FOOTER: generado por                                        │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/attendly-api/internal/application/attendance"
	"github.com/jhoicas/attendly-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 24, Green: 90, Blue: 157}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 250}
)

var statusLabels = map[entity.AttendanceStatus]string{
	entity.AttendancePresent:    "Presente",
	entity.AttendanceAbsent:     "Ausente",
	entity.AttendanceLate:       "Tarde",
	entity.AttendanceCheckedOut: "Salida registrada",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ attendance.ReportPDFGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa attendance.ReportPDFGenerator con Maroto v2.
type ReportGenerator struct {
	loc *time.Location
}

// NewReportGenerator construye el generador; las horas se muestran en loc.
func NewReportGenerator(loc *time.Location) *ReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportGenerator{loc: loc}
}

// GenerateAttendanceReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateAttendanceReport(ctx context.Context, r attendance.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor("attendly", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(r.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(r.Records)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r attendance.Report) core.Row {
	scope := "Mis registros"
	if r.Scope == "all" {
		scope = "Todos los empleados"
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(scope, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Periodo: "+period(r.From, r.To), props.Text{Size: 8, Align: align.Right, Top: 2}),
			text.New("Emitido: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func totalsRow(s entity.AttendanceStats) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		)
	}
	return row.New(13).Add(
		cell("Días", fmt.Sprint(s.Total)),
		cell("Presente", fmt.Sprint(s.Present)),
		cell("Tarde", fmt.Sprint(s.Late)),
		cell("Ausente", fmt.Sprint(s.Absent)),
		cell("Asistencia", s.Percentage().StringFixed(2)+"%"),
		cell("Horas", s.WorkedHours.StringFixed(2)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2),
		h("Empleado", 3),
		h("Entrada", 2),
		h("Salida", 2),
		h("Estado", 2),
		h("Horas", 1),
	)
}

func (g *ReportGenerator) tableRows(records []*entity.AttendanceRecord) []core.Row {
	if len(records) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin registros para el periodo.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(records))
	for i, rec := range records {
		cell := func(s string, size int) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
		}
		hours := "-"
		if h, ok := rec.WorkedHours(); ok {
			hours = h.StringFixed(2)
		}
		r := row.New(6).Add(
			cell(rec.Date.Format("02/01/2006"), 2),
			cell(rec.EmployeeName, 3),
			cell(g.clock(rec.CheckIn), 2),
			cell(g.clock(rec.CheckOut), 2),
			cell(statusLabel(rec.Status), 2),
			cell(hours, 1),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func footerRow(r attendance.Report) core.Row {
	by := r.GeneratedBy
	if by == "" {
		by = "-"
	}
	return row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Generado por %s · %d registros", by, len(r.Records)), props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *ReportGenerator) clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(g.loc).Format("15:04")
}

func statusLabel(s entity.AttendanceStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func period(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "completo"
	case from != nil && to != nil && from.Equal(*to):
		return from.Format("02/01/2006")
	case from == nil:
		return "hasta " + to.Format("02/01/2006")
	case to == nil:
		return "desde " + from.Format("02/01/2006")
	}
	return from.Format("02/01/2006") + " - " + to.Format("02/01/2006")
}
