package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia del inventario.
// Las búsquedas devuelven (nil, nil) cuando el producto no existe.
type InventoryRepository interface {
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	GetByProduct(ctx context.Context, product string) (*entity.InventoryItem, error)
	GetByProductForUpdate(ctx context.Context, product string) (*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id int64) error
}
