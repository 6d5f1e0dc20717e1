package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// OperationRepository historial de operaciones (solo inserción).
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	// List devuelve todas las operaciones en orden de inserción.
	List(ctx context.Context) ([]*entity.Operation, error)
}
