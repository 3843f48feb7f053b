package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendly-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los errores se reportan con el nombre del campo JSON/query
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bindError petición mal formada o que no pasa la validación.
type bindError struct {
	message string
	details []dto.FieldError
}

func (e *bindError) Error() string { return e.message }

// bindJSON parsea el cuerpo y valida las etiquetas validate.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return parseBodyError(err)
	}
	return validateStruct(out)
}

// bindQuery parsea la query string y valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &bindError{message: "parámetros de consulta inválidos"}
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &bindError{message: "datos inválidos"}
	}
	details := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe.Tag(), fe.Param()),
		})
	}
	return &bindError{message: "datos inválidos", details: details}
}

func parseBodyError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &bindError{message: "JSON mal formado"}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &bindError{
			message: "tipo de dato inválido",
			details: []dto.FieldError{{Field: typeErr.Field, Message: "debe ser de tipo " + typeErr.Type.String()}},
		}
	}
	if errors.Is(err, fiber.ErrUnprocessableEntity) {
		return &bindError{message: "Content-Type debe ser application/json"}
	}
	return &bindError{message: "cuerpo inválido"}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return "mínimo " + param
	case "max":
		return "máximo " + param
	case "len":
		return "debe tener exactamente " + param + " caracteres"
	case "numeric":
		return "solo dígitos"
	case "uuid":
		return "debe ser un UUID"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(param, " ", ", ")
	case "datetime":
		return "formato esperado " + param
	}
	if param != "" {
		return fmt.Sprintf("no cumple %s (%s)", rule, param)
	}
	return "no cumple " + rule
}
