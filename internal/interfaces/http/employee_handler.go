package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/application/usecase"
	"github.com/jhoicas/attendly-api/internal/domain"
)

// EmployeeHandler maneja la nómina de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler de empleados.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados activos
// @Description  El admin ve toda la nómina; el resto solo su propio empleado.
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	list, err := h.uc.List(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear empleado
// @Description  Crea el empleado y su cuenta (o vincula la cuenta existente con el mismo email).
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEmployeeRequest  true  "name, email, department, employee_code, password opcional"
// @Success      201   {object}  dto.CreateEmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDeleted godoc
// @Summary      Listar empleados dados de baja
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/employees/deleted [get]
func (h *EmployeeHandler) ListDeleted(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	list, err := h.uc.ListDeleted(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Details godoc
// @Summary      Detalle de empleado con estadísticas
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del empleado (UUID)"
// @Success      200  {object}  dto.EmployeeDetailsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/details [get]
func (h *EmployeeHandler) Details(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.Details(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un empleado
// @Description  Baja lógica: el historial de asistencia se conserva.
// @Tags         employees
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del empleado (UUID)"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	if err := h.uc.SoftDelete(c.UserContext(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Corregir el estado de un empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                           true  "ID del empleado (UUID)"
// @Param        body  body  dto.UpdateEmployeeStatusRequest  true  "present | absent | late"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/status [put]
func (h *EmployeeHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateEmployeeStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	actor, _ := GetActor(c)
	out, err := h.uc.OverrideStatus(c.UserContext(), actor, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func employeeIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.ErrEmployeeNotFound
	}
	return id, nil
}
