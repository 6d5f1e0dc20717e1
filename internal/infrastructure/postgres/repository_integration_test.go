package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// Requiere una base PostgreSQL desechable: TEST_DATABASE_URL=postgres://... go test ./...
func setupDB(t *testing.T) *postgres.TxRunner {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := logger.Nop()
	require.NoError(t, postgres.RunMigrations(ctx, log, dsn, "reset"))
	require.NoError(t, postgres.RunMigrations(ctx, log, dsn, "up"))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	created, err := postgres.NewBalanceRepository(pool).EnsureInitialized(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	return postgres.NewTxRunner(pool)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	runner := setupDB(t)
	ctx := context.Background()

	err := runner.Run(ctx, func(br repository.BalanceRepository, ir repository.InventoryRepository, or repository.OperationRepository) error {
		b, err := br.GetForUpdate(ctx)
		require.NoError(t, err)
		b.Credit(decimal.NewFromInt(100))
		require.NoError(t, br.Update(ctx, b))
		require.NoError(t, ir.Create(ctx, &entity.InventoryItem{Product: "Widget", Quantity: 3, Price: decimal.NewFromInt(5)}))
		return or.Create(ctx, entity.NewOperation(entity.OperationTypeBalance, "Added € 100.00", time.Now()))
	})
	require.NoError(t, err)

	err = runner.Run(ctx, func(br repository.BalanceRepository, ir repository.InventoryRepository, _ repository.OperationRepository) error {
		it, err := ir.GetByProductForUpdate(ctx, "Widget")
		require.NoError(t, err)
		require.NotNil(t, it)
		require.NoError(t, ir.Delete(ctx, it.ID))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_ = runner.Run(ctx, func(br repository.BalanceRepository, ir repository.InventoryRepository, or repository.OperationRepository) error {
		b, err := br.Get(ctx)
		require.NoError(t, err)
		assert.True(t, b.Balance.Equal(decimal.NewFromInt(100)))

		it, err := ir.GetByProduct(ctx, "Widget")
		require.NoError(t, err)
		require.NotNil(t, it, "el borrado se revirtió")
		assert.Equal(t, int64(3), it.Quantity)

		ops, err := or.List(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 1)
		assert.Equal(t, entity.OperationTypeBalance, ops[0].Type)
		return nil
	})
}
