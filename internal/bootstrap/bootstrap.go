// Package bootstrap arma las dependencias de la aplicación a partir de la configuración.
// Lo usan tanto el servidor HTTP como la herramienta de línea de comandos.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/internal/infrastructure/events"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/currency"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// Store almacén de registros ya abierto (PostgreSQL o memoria).
type Store struct {
	TxRunner   warehouse.TxRunner
	Balance    repository.BalanceRepository
	Inventory  repository.InventoryRepository
	Operations repository.OperationRepository
}

// UseCases casos de uso listos para los handlers.
type UseCases struct {
	Balance   *warehouse.BalanceUseCase
	Sale      *warehouse.SaleUseCase
	Purchase  *warehouse.PurchaseUseCase
	History   *warehouse.HistoryUseCase
	Dashboard *warehouse.DashboardUseCase
}

// App resultado de Bootstrap.
type App struct {
	Store    *Store
	UseCases UseCases
	Money    currency.Formatter
}

// Bootstrap abre el almacén, aplica migraciones (PostgreSQL), garantiza la fila de saldo
// y conecta NATS si está configurado. Devuelve una función de limpieza que libera todo en orden inverso.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, func(), error) {
	var cleanupFns []func()

	store, closeStore, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanupFns = append(cleanupFns, closeStore)

	if err := EnsureBalance(ctx, store, log); err != nil {
		return nil, runCleanup(cleanupFns), err
	}

	var publisher warehouse.EventPublisher = events.NoopPublisher{}
	if cfg.NATS.Enabled() {
		nc, err := events.Connect(cfg.NATS.URL, cfg.App.Name)
		if err != nil {
			return nil, runCleanup(cleanupFns), err
		}
		cleanupFns = append(cleanupFns, nc.Close)
		publisher = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
		log.Info().Str("url", cfg.NATS.URL).Str("prefix", cfg.NATS.SubjectPrefix).Msg("publicación de operaciones en NATS")
	}

	money := currency.NewFormatter(cfg.App.Currency)
	pdfGen := pdf.NewMarotoHistoryPDF(cfg.App.Name, money)
	ucLog := log.Named("warehouse")

	app := &App{
		Store: store,
		Money: money,
		UseCases: UseCases{
			Balance:   warehouse.NewBalanceUseCase(store.TxRunner, store.Balance, publisher, ucLog),
			Sale:      warehouse.NewSaleUseCase(store.TxRunner, publisher, ucLog),
			Purchase:  warehouse.NewPurchaseUseCase(store.TxRunner, publisher, ucLog),
			History:   warehouse.NewHistoryUseCase(store.Operations, store.Balance, pdfGen),
			Dashboard: warehouse.NewDashboardUseCase(store.Balance, store.Inventory),
		},
	}
	return app, runCleanup(cleanupFns), nil
}

// OpenStore abre el almacén indicado por STORAGE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Store{
			TxRunner:   s,
			Balance:    s.BalanceRepository(),
			Inventory:  s.InventoryRepository(),
			Operations: s.OperationRepository(),
		}, func() {}, nil

	case config.StoragePostgres:
		if err := postgres.RunMigrations(ctx, log.Named("migrations"), cfg.DB.ConnectionString(), "up"); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return &Store{
			TxRunner:   postgres.NewTxRunner(pool),
			Balance:    postgres.NewBalanceRepository(pool),
			Inventory:  postgres.NewInventoryRepository(pool),
			Operations: postgres.NewOperationRepository(pool),
		}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
}

// EnsureBalance crea la fila de saldo con 0 si todavía no existe.
func EnsureBalance(ctx context.Context, store *Store, log *logger.Logger) error {
	created, err := store.Balance.EnsureInitialized(ctx)
	if err != nil {
		return fmt.Errorf("inicializar saldo: %w", err)
	}
	if created {
		log.Info().Msg("saldo de cuenta inicializado en 0")
	}
	return nil
}

// runCleanup devuelve una única función que ejecuta las limpiezas en orden inverso.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
