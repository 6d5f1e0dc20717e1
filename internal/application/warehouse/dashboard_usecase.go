package warehouse

import (
	"context"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/ledger"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// DashboardUseCase arma la vista principal: saldo e inventario completo.
type DashboardUseCase struct {
	balanceRepo   repository.BalanceRepository
	inventoryRepo repository.InventoryRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(balanceRepo repository.BalanceRepository, inventoryRepo repository.InventoryRepository) *DashboardUseCase {
	return &DashboardUseCase{balanceRepo: balanceRepo, inventoryRepo: inventoryRepo}
}

// GetDashboard devuelve saldo, inventario y el valor del stock al precio registrado.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	balance, err := uc.balanceRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrBalanceNotInitialized
	}
	items, err := uc.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardDTO{
		Balance:    balance.Balance,
		StockValue: ledger.StockValue(items),
		Inventory:  make([]dto.InventoryItemDTO, 0, len(items)),
	}
	for _, it := range items {
		out.Inventory = append(out.Inventory, dto.InventoryItemDTO{
			Product:  it.Product,
			Quantity: it.Quantity,
			Price:    it.Price,
			Value:    it.Value(),
		})
	}
	return out, nil
}
