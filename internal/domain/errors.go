package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
)

// ValidationError entrada mal formada, fuera de rango o duplicada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError;
// Err permite distinguir causas concretas (ErrDuplicate, ErrInsufficientQuantity).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NotFoundError un id referenciado (plantilla, producto, variante, item, ubicación...) no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Invalid construye un ValidationError sobre un campo.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Duplicate construye un ValidationError por valor único repetido.
func Duplicate(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("el valor %q ya existe", value),
		Err:     ErrDuplicate,
	}
}

// InsufficientQuantity construye el rechazo de una salida que excede la cantidad actual.
func InsufficientQuantity(itemID string) *ValidationError {
	return &ValidationError{
		Field:   "quantity",
		Message: fmt.Sprintf("cantidad insuficiente en el item %s", itemID),
		Err:     ErrInsufficientQuantity,
	}
}

// NotFound construye un NotFoundError.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
