package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/rs/zerolog/log"
)

var denialStatus = map[policy.Kind]int{
	policy.KindUnauthorized:      fiber.StatusForbidden,
	policy.KindNotFound:          fiber.StatusNotFound,
	policy.KindAlreadyMarked:     fiber.StatusConflict,
	policy.KindInvalidTransition: fiber.StatusConflict,
}

// writeError traduce errores de aplicación a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var be *bindError
	if errors.As(err, &be) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: be.message, Details: be.details})
	}
	if d, ok := policy.AsDenial(err); ok {
		return c.Status(denialStatus[d.Kind]).JSON(dto.ErrorResponse{Code: string(d.Kind), Message: d.Reason})
	}

	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "código de empleado o contraseña incorrectos"}
	case errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida"}
	case errors.Is(err, domain.ErrForbidden):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrEmployeeCodeExists):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "EMPLOYEE_CODE_EXISTS", Message: "el código de empleado ya está registrado"}
	case errors.Is(err, domain.ErrEmployeeNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "empleado no encontrado"}
	case errors.Is(err, domain.ErrUserNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "código de empleado no encontrado"}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	default:
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler para fiber.Config: errores que escapan de los handlers (404 de rutas, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
