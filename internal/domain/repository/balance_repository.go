package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// BalanceRepository define el puerto para la fila única de saldo (entity.AccountBalanceID).
type BalanceRepository interface {
	Get(ctx context.Context) (*entity.AccountBalance, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context) (*entity.AccountBalance, error)
	Update(ctx context.Context, balance *entity.AccountBalance) error
	// EnsureInitialized crea la fila con saldo 0 si no existe.
	EnsureInitialized(ctx context.Context) (created bool, err error)
}
