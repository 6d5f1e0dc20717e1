package warehouse

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/ledger"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// SaleUseCase registra ventas: valida stock, acredita el saldo, descuenta inventario
// y agrega la operación "Sale", todo en la misma transacción.
type SaleUseCase struct {
	txRunner TxRunner
	notifier
}

// NewSaleUseCase construye el caso de uso. events puede ser nil.
func NewSaleUseCase(txRunner TxRunner, events EventPublisher, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, notifier: newNotifier(events, log)}
}

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	Product   string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// SaleResult resultado de una venta confirmada.
type SaleResult struct {
	Total     decimal.Decimal
	Balance   decimal.Decimal
	Remaining int64 // stock restante; 0 significa que el producto se eliminó
	Operation *entity.Operation
}

// RecordSale vende Quantity unidades de Product a UnitPrice.
// Errores: domain.ErrProductNotFound, domain.ErrInsufficientStock o un ValidationError;
// en todos los casos no se persiste nada.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in SaleInput) (*SaleResult, error) {
	name, ok := entity.NormalizeProductName(in.Product)
	if !ok {
		return nil, domain.Invalid("product", in.Product)
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", strconv.FormatInt(in.Quantity, 10))
	}
	if in.UnitPrice.IsNegative() || !ledger.ValidAmount(in.UnitPrice) {
		return nil, domain.Invalid("price", ledger.AmountText(in.UnitPrice))
	}

	now := uc.now()
	var res SaleResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.BalanceRepository,
		inventoryRepo repository.InventoryRepository,
		operationRepo repository.OperationRepository,
	) error {
		// Siempre se bloquea primero el saldo y luego el producto (mismo orden que compras).
		balance, err := balanceRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrBalanceNotInitialized
		}
		item, err := inventoryRepo.GetByProductForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrProductNotFound
		}
		if in.Quantity > item.Quantity {
			return domain.ErrInsufficientStock
		}

		total := ledger.LineTotal(in.UnitPrice, in.Quantity)
		balance.Credit(total)
		if !ledger.ValidAmount(balance.Balance) {
			return domain.Invalid("total", ledger.AmountText(total))
		}
		balance.UpdatedAt = now
		if err := balanceRepo.Update(ctx, balance); err != nil {
			return err
		}
		if item.Remove(in.Quantity) {
			err = inventoryRepo.Delete(ctx, item.ID)
		} else {
			err = inventoryRepo.Update(ctx, item)
		}
		if err != nil {
			return err
		}
		op := entity.NewOperation(entity.OperationTypeSale, ledger.SaleDetails(in.Quantity, name, in.UnitPrice, total), now)
		if err := operationRepo.Create(ctx, op); err != nil {
			return err
		}
		res = SaleResult{Total: total, Balance: balance.Balance, Remaining: item.Quantity, Operation: op}
		return nil
	})
	if err != nil {
		uc.rejected(entity.OperationTypeSale, err)
		return nil, err
	}
	uc.committed(ctx, res.Operation)
	return &res, nil
}
