package warehouse

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.BalanceRepository,
		inventoryRepo repository.InventoryRepository,
		operationRepo repository.OperationRepository,
	) error) error
}

// EventPublisher notifica operaciones ya confirmadas (p. ej. NATS).
type EventPublisher interface {
	Publish(ctx context.Context, op *entity.Operation) error
}

// HistoryPDFGenerator genera la exportación en PDF del historial.
type HistoryPDFGenerator interface {
	GenerateHistoryPDF(ctx context.Context, ops []*entity.Operation, balance *entity.AccountBalance) ([]byte, error)
}
