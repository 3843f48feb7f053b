package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendly-api/internal/application/attendance"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
)

// AttendanceHandler maneja marcado, salida y consultas de asistencia.
type AttendanceHandler struct {
	uc *attendance.AttendanceUseCase
}

// NewAttendanceHandler construye el handler de asistencia.
func NewAttendanceHandler(uc *attendance.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// Mark godoc
// @Summary      Marcar asistencia del día
// @Description  Solo el empleado vinculado a la cuenta puede marcar su propia asistencia, una vez por día.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.MarkAttendanceRequest  true  "status: present | absent | late"
// @Success      201   {object}  dto.AttendanceRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance/mark [post]
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var in dto.MarkAttendanceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.Mark(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckOut godoc
// @Summary      Registrar salida del día
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CheckOutRequest  false  "employee_id opcional"
// @Success      200   {object}  dto.AttendanceRecordResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	actor, _ := GetActor(c)
	out, err := h.uc.CheckOut(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros de asistencia
// @Description  scope=all solo aplica a administradores; para el resto se degrada a own.
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        scope  query  string  false  "own | all"
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Param        limit  query  int     false  "máximo 1000"
// @Success      200    {object}  dto.AttendanceListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.List(c.UserContext(), actor, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByDate godoc
// @Summary      Registros de una fecha
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date   path   string  true   "YYYY-MM-DD"
// @Param        scope  query  string  false  "own | all"
// @Success      200    {object}  dto.AttendanceListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/attendance/date/{date} [get]
func (h *AttendanceHandler) ByDate(c *fiber.Ctx) error {
	date, err := attendance.ParseDate(c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	scope, err := policy.ParseScope(c.Query("scope"))
	if err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.ListByDate(c.UserContext(), actor, date, scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen mensual propio
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query  string  false  "YYYY-MM (por defecto el mes actual)"
// @Success      200    {object}  dto.SummaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/attendance/summary [get]
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.Summary(c.UserContext(), actor, c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF de asistencia
// @Tags         attendance
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        scope  query  string  false  "own | all"
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Success      200    {file}    binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/attendance/report.pdf [get]
func (h *AttendanceHandler) Report(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	pdf, filename, err := h.uc.ExportPDF(c.UserContext(), actor, q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}

func listQuery(c *fiber.Ctx) (attendance.ListQuery, error) {
	var in dto.AttendanceQuery
	if err := bindQuery(c, &in); err != nil {
		return attendance.ListQuery{}, err
	}
	return attendance.ParseListQuery(in)
}
