package entity

import "time"

// Tipos de operación registrados en el historial.
const (
	OperationTypeBalance  = "Balance"
	OperationTypeSale     = "Sale"
	OperationTypePurchase = "Purchase"
)

// Límites de las columnas de la tabla operation.
const (
	MaxOperationTypeLen    = 20
	MaxOperationDetailsLen = 200
)

// Operation entrada inmutable del historial. El orden es el de inserción (ID creciente).
type Operation struct {
	ID        int64
	Type      string
	Details   string
	CreatedAt time.Time
}

// ValidOperationType indica si t es uno de los tipos conocidos.
func ValidOperationType(t string) bool {
	switch t {
	case OperationTypeBalance, OperationTypeSale, OperationTypePurchase:
		return true
	}
	return false
}

// NewOperation construye una operación recortando los detalles al tamaño de la columna.
func NewOperation(opType, details string, now time.Time) *Operation {
	if r := []rune(details); len(r) > MaxOperationDetailsLen {
		details = string(r[:MaxOperationDetailsLen])
	}
	return &Operation{Type: opType, Details: details, CreatedAt: now}
}
