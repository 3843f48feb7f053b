package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/application/usecase"
	"github.com/jhoicas/attendly-api/internal/domain"
)

// LeaveHandler maneja las solicitudes de ausencia.
type LeaveHandler struct {
	uc *usecase.LeaveUseCase
}

// NewLeaveHandler construye el handler de ausencias.
func NewLeaveHandler(uc *usecase.LeaveUseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// Request godoc
// @Summary      Solicitar ausencia
// @Description  Registra una solicitud pending a nombre del usuario autenticado.
// @Tags         leave
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLeaveRequest  true  "type (sick, casual, paid), start_date, end_date, reason"
// @Success      201   {object}  dto.LeaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/leave/request [post]
func (h *LeaveHandler) Request(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.Request(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de ausencias propio
// @Tags         leave
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LeaveHistoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/leave/history [get]
func (h *LeaveHandler) History(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.History(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Aprobar o rechazar una ausencia
// @Tags         leave
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la solicitud"
// @Param        body  body  dto.ResolveLeaveRequest  true  "status: approved | rejected"
// @Success      200   {object}  dto.LeaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leave/{id}/status [put]
func (h *LeaveHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fmt.Errorf("%w: solicitud de ausencia", domain.ErrNotFound))
	}
	var in dto.ResolveLeaveRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.Resolve(c.UserContext(), actor, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
