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

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
// Siempre opera sobre la fila entity.AccountBalanceID.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const selectBalance = `SELECT id, balance, updated_at FROM account_balance WHERE id = $1`

// Get obtiene el saldo; (nil, nil) si aún no se inicializó.
func (r *BalanceRepo) Get(ctx context.Context) (*entity.AccountBalance, error) {
	return r.scan(ctx, selectBalance)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *BalanceRepo) GetForUpdate(ctx context.Context) (*entity.AccountBalance, error) {
	return r.scan(ctx, selectBalance+` FOR UPDATE`)
}

func (r *BalanceRepo) scan(ctx context.Context, query string) (*entity.AccountBalance, error) {
	var b entity.AccountBalance
	err := r.q.QueryRow(ctx, query, entity.AccountBalanceID).Scan(&b.ID, &b.Balance, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// Update persiste el nuevo saldo.
func (r *BalanceRepo) Update(ctx context.Context, balance *entity.AccountBalance) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE account_balance SET balance = $2, updated_at = now() WHERE id = $1`,
		entity.AccountBalanceID, balance.Balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update balance: %w", domain.ErrBalanceNotInitialized)
	}
	return nil
}

// EnsureInitialized inserta la fila con saldo 0 si no existe (idempotente).
func (r *BalanceRepo) EnsureInitialized(ctx context.Context) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO account_balance (id, balance, updated_at) VALUES ($1, 0, now())
		 ON CONFLICT (id) DO NOTHING`,
		entity.AccountBalanceID)
	if err != nil {
		return false, fmt.Errorf("init balance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
