package warehouse

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/ledger"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// BalanceUseCase ajusta el saldo de caja (sumar/restar) y lo registra en el historial.
type BalanceUseCase struct {
	txRunner    TxRunner
	balanceRepo repository.BalanceRepository
	notifier
}

// NewBalanceUseCase construye el caso de uso. events puede ser nil.
func NewBalanceUseCase(txRunner TxRunner, balanceRepo repository.BalanceRepository, events EventPublisher, log *logger.Logger) *BalanceUseCase {
	return &BalanceUseCase{
		txRunner:    txRunner,
		balanceRepo: balanceRepo,
		notifier:    newNotifier(events, log),
	}
}

// AdjustBalanceInput entrada para ajustar el saldo.
type AdjustBalanceInput struct {
	Action string // ledger.ActionAdd | ledger.ActionSubtract
	Amount decimal.Decimal
}

// AdjustBalanceResult saldo resultante y operación registrada.
type AdjustBalanceResult struct {
	Balance   decimal.Decimal
	Operation *entity.Operation
}

// GetBalance devuelve el saldo actual.
func (uc *BalanceUseCase) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	b, err := uc.balanceRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if b == nil {
		return decimal.Zero, domain.ErrBalanceNotInitialized
	}
	return b.Balance, nil
}

// AdjustBalance suma o resta Amount al saldo dentro de una transacción y agrega
// una operación "Balance". Restar no tiene piso: el saldo puede quedar negativo.
func (uc *BalanceUseCase) AdjustBalance(ctx context.Context, in AdjustBalanceInput) (*AdjustBalanceResult, error) {
	if in.Action != ledger.ActionAdd && in.Action != ledger.ActionSubtract {
		return nil, domain.Invalid("action", in.Action)
	}
	if !in.Amount.IsPositive() || !ledger.ValidAmount(in.Amount) {
		return nil, domain.Invalid("amount", ledger.AmountText(in.Amount))
	}

	now := uc.now()
	var res AdjustBalanceResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.BalanceRepository,
		_ repository.InventoryRepository,
		operationRepo repository.OperationRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrBalanceNotInitialized
		}
		if in.Action == ledger.ActionAdd {
			balance.Credit(in.Amount)
		} else {
			balance.Debit(in.Amount)
		}
		if !ledger.ValidAmount(balance.Balance) {
			return domain.Invalid("amount", ledger.AmountText(in.Amount))
		}
		balance.UpdatedAt = now
		if err := balanceRepo.Update(ctx, balance); err != nil {
			return err
		}
		op := entity.NewOperation(entity.OperationTypeBalance, ledger.BalanceDetails(in.Action, in.Amount), now)
		if err := operationRepo.Create(ctx, op); err != nil {
			return err
		}
		res = AdjustBalanceResult{Balance: balance.Balance, Operation: op}
		return nil
	})
	if err != nil {
		uc.rejected(entity.OperationTypeBalance, err)
		return nil, err
	}
	uc.committed(ctx, res.Operation)
	return &res, nil
}
