package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo historial de operaciones sobre PostgreSQL (usable con pool o tx).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

// Create inserta la operación y asigna op.ID (bigserial, define el orden).
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO operation (type, details, created_at) VALUES ($1, $2, $3) RETURNING id`,
		op.Type, op.Details, op.CreatedAt,
	).Scan(&op.ID)
	if err != nil {
		return fmt.Errorf("create operation: %w", err)
	}
	return nil
}

// List devuelve todas las operaciones en orden de inserción.
func (r *OperationRepo) List(ctx context.Context) ([]*entity.Operation, error) {
	rows, err := r.q.Query(ctx, `SELECT id, type, details, created_at FROM operation ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		var op entity.Operation
		if err := rows.Scan(&op.ID, &op.Type, &op.Details, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, &op)
	}
	return list, rows.Err()
}
