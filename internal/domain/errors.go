package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrProductNotFound       = errors.New("producto no disponible en el inventario")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInsufficientFunds     = errors.New("saldo insuficiente")
	ErrBalanceNotInitialized = errors.New("saldo de cuenta no inicializado")
)

// ValidationError indica qué campo del formulario no pudo interpretarse.
// Envuelve ErrInvalidInput para que errors.Is siga funcionando en los handlers.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: %s.", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError para field con el valor recibido.
func Invalid(field, value string) error {
	return &ValidationError{Field: field, Value: value}
}
