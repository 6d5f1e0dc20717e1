package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// List devuelve todo el inventario en orden de alta.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT id, product, quantity, price FROM inventory ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.Product, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetByProduct busca por nombre exacto; (nil, nil) si no existe.
func (r *InventoryRepo) GetByProduct(ctx context.Context, product string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT id, product, quantity, price FROM inventory WHERE product = $1`, product)
}

// GetByProductForUpdate igual que GetByProduct bloqueando la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByProductForUpdate(ctx context.Context, product string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT id, product, quantity, price FROM inventory WHERE product = $1 FOR UPDATE`, product)
}

func (r *InventoryRepo) get(ctx context.Context, query, product string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, product).Scan(&it.ID, &it.Product, &it.Quantity, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

// Create inserta un producto nuevo y asigna item.ID.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventory (product, quantity, price) VALUES ($1, $2, $3) RETURNING id`,
		item.Product, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create inventory item %q: %w", item.Product, domain.ErrInvalidInput)
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// Update persiste la cantidad. El precio no se modifica en reposiciones.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory SET quantity = $2 WHERE id = $1`, item.ID, item.Quantity)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el producto (stock agotado).
func (r *InventoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete inventory item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
