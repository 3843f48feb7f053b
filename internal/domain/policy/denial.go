package policy

import (
	"errors"

	"github.com/jhoicas/attendly-api/internal/domain"
)

// Kind clasifica una denegación de la política.
type Kind string

const (
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindAlreadyMarked     Kind = "ALREADY_MARKED"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindNotFound          Kind = "NOT_FOUND"
)

// Denial es el resultado tipado de una decisión negativa. Es definitiva para la
// petición: no se reintenta.
type Denial struct {
	Kind   Kind
	Reason string
}

// Deny construye una denegación tipada.
func Deny(kind Kind, reason string) *Denial {
	return &Denial{Kind: kind, Reason: reason}
}

func (d *Denial) Error() string {
	return d.Reason
}

// Unwrap permite usar errors.Is con los errores de dominio.
func (d *Denial) Unwrap() error {
	switch d.Kind {
	case KindUnauthorized:
		return domain.ErrForbidden
	case KindAlreadyMarked:
		return domain.ErrAlreadyMarked
	case KindInvalidTransition:
		return domain.ErrInvalidTransition
	case KindNotFound:
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// AsDenial extrae la denegación de una cadena de errores.
func AsDenial(err error) (*Denial, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// Decision objeto {allowed, reason} que se expone a la capa de transporte.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Code    Kind   `json:"code,omitempty"`
}

// Allow decisión positiva.
func Allow() Decision {
	return Decision{Allowed: true}
}

// DecisionOf convierte el resultado de una operación de la política en Decision.
func DecisionOf(err error) Decision {
	if err == nil {
		return Allow()
	}
	if d, ok := AsDenial(err); ok {
		return Decision{Allowed: false, Reason: d.Reason, Code: d.Kind}
	}
	return Decision{Allowed: false, Reason: err.Error()}
}
