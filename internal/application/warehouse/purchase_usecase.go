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

// PurchaseUseCase registra compras: verifica saldo, lo debita, suma inventario
// (creando el producto si es nuevo) y agrega la operación "Purchase".
type PurchaseUseCase struct {
	txRunner TxRunner
	notifier
}

// NewPurchaseUseCase construye el caso de uso. events puede ser nil.
func NewPurchaseUseCase(txRunner TxRunner, events EventPublisher, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, notifier: newNotifier(events, log)}
}

// PurchaseInput entrada para registrar una compra.
type PurchaseInput struct {
	Product   string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// PurchaseResult resultado de una compra confirmada.
type PurchaseResult struct {
	Total     decimal.Decimal
	Balance   decimal.Decimal
	Stock     int64 // cantidad en inventario tras la compra
	Created   bool  // true si el producto no existía
	Operation *entity.Operation
}

// RecordPurchase compra Quantity unidades de Product a UnitPrice.
// Si el producto ya existe solo aumenta la cantidad: el precio registrado se conserva.
func (uc *PurchaseUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	name, ok := entity.NormalizeProductName(in.Product)
	if !ok {
		return nil, domain.Invalid("product", in.Product)
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", strconv.FormatInt(in.Quantity, 10))
	}
	if !in.UnitPrice.IsPositive() || !ledger.ValidAmount(in.UnitPrice) {
		return nil, domain.Invalid("price", ledger.AmountText(in.UnitPrice))
	}

	total := ledger.LineTotal(in.UnitPrice, in.Quantity)
	now := uc.now()
	var res PurchaseResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.BalanceRepository,
		inventoryRepo repository.InventoryRepository,
		operationRepo repository.OperationRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrBalanceNotInitialized
		}
		if !balance.Covers(total) {
			return domain.ErrInsufficientFunds
		}
		balance.Debit(total)
		balance.UpdatedAt = now
		if err := balanceRepo.Update(ctx, balance); err != nil {
			return err
		}

		item, err := inventoryRepo.GetByProductForUpdate(ctx, name)
		if err != nil {
			return err
		}
		created := item == nil
		if created {
			item = &entity.InventoryItem{Product: name, Quantity: in.Quantity, Price: in.UnitPrice}
			err = inventoryRepo.Create(ctx, item)
		} else {
			if !item.Restock(in.Quantity) {
				return domain.Invalid("quantity", strconv.FormatInt(in.Quantity, 10))
			}
			err = inventoryRepo.Update(ctx, item)
		}
		if err != nil {
			return err
		}

		op := entity.NewOperation(entity.OperationTypePurchase, ledger.PurchaseDetails(in.Quantity, name, in.UnitPrice, total), now)
		if err := operationRepo.Create(ctx, op); err != nil {
			return err
		}
		res = PurchaseResult{Total: total, Balance: balance.Balance, Stock: item.Quantity, Created: created, Operation: op}
		return nil
	})
	if err != nil {
		uc.rejected(entity.OperationTypePurchase, err)
		return nil, err
	}
	uc.committed(ctx, res.Operation)
	return &res, nil
}
