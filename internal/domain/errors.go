package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrParcelNotFound = errors.New("paquete no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrConflict       = errors.New("conflicto de unicidad")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
)

// ValidationError agrupa todos los mensajes de validación violados, en orden.
// Los validadores acumulan cada regla incumplida; nunca reportan solo la primera.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// NewValidationError construye el error a partir de los mensajes acumulados.
// Devuelve nil si no hubo violaciones.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// AsValidationError extrae un *ValidationError de la cadena de errores.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// RateNotFoundError indica que no existe tarifa para el par origen/destino.
// El cálculo de costo falla en vez de asumir un valor por defecto.
type RateNotFoundError struct {
	Origin      string
	Destination string
}

func (e *RateNotFoundError) Error() string {
	if e.Origin == "" && e.Destination == "" {
		// La referencia de tarifa del paquete ya no resuelve: la ruta se perdió con ella.
		return "el paquete no tiene tarifa vigente"
	}
	return fmt.Sprintf("no existe tarifa para la ruta %s → %s", e.Origin, e.Destination)
}

// AsRateNotFoundError extrae un *RateNotFoundError de la cadena de errores.
func AsRateNotFoundError(err error) (*RateNotFoundError, bool) {
	var re *RateNotFoundError
	ok := errors.As(err, &re)
	return re, ok
}
