package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var (
	_ repository.BalanceRepository   = (*balanceRepo)(nil)
	_ repository.InventoryRepository = (*inventoryRepo)(nil)
	_ repository.OperationRepository = (*operationRepo)(nil)
)

// ── Repos atados a un estado (dentro de Run) ─────────────────────────────────

type balanceRepo struct{ st *state }

func (r *balanceRepo) Get(_ context.Context) (*entity.AccountBalance, error) {
	if r.st.balance == nil {
		return nil, nil
	}
	b := *r.st.balance
	return &b, nil
}

// GetForUpdate no necesita bloqueo extra: Run ya tiene el mutex del Store.
func (r *balanceRepo) GetForUpdate(ctx context.Context) (*entity.AccountBalance, error) {
	return r.Get(ctx)
}

func (r *balanceRepo) Update(_ context.Context, balance *entity.AccountBalance) error {
	if r.st.balance == nil {
		return fmt.Errorf("update balance: %w", domain.ErrBalanceNotInitialized)
	}
	b := *balance
	b.ID = entity.AccountBalanceID
	r.st.balance = &b
	return nil
}

func (r *balanceRepo) EnsureInitialized(_ context.Context) (bool, error) {
	if r.st.balance != nil {
		return false, nil
	}
	r.st.balance = &entity.AccountBalance{ID: entity.AccountBalanceID}
	return true, nil
}

type inventoryRepo struct{ st *state }

func (r *inventoryRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	list := make([]*entity.InventoryItem, 0, len(r.st.items))
	for _, it := range r.st.items {
		cp := *it
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *inventoryRepo) GetByProduct(_ context.Context, product string) (*entity.InventoryItem, error) {
	for _, it := range r.st.items {
		if it.Product == product {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inventoryRepo) GetByProductForUpdate(ctx context.Context, product string) (*entity.InventoryItem, error) {
	return r.GetByProduct(ctx, product)
}

func (r *inventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if existing, _ := r.GetByProduct(ctx, item.Product); existing != nil {
		return fmt.Errorf("create inventory item %q: duplicado", item.Product)
	}
	item.ID = r.st.nextItemID
	r.st.nextItemID++
	cp := *item
	r.st.items[item.ID] = &cp
	return nil
}

func (r *inventoryRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if _, ok := r.st.items[item.ID]; !ok {
		return fmt.Errorf("update inventory item %d: %w", item.ID, domain.ErrNotFound)
	}
	cp := *item
	r.st.items[item.ID] = &cp
	return nil
}

func (r *inventoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.items[id]; !ok {
		return fmt.Errorf("delete inventory item %d: %w", id, domain.ErrNotFound)
	}
	delete(r.st.items, id)
	return nil
}

type operationRepo struct{ st *state }

func (r *operationRepo) Create(_ context.Context, op *entity.Operation) error {
	op.ID = r.st.nextOpID
	r.st.nextOpID++
	cp := *op
	r.st.operations = append(r.st.operations, &cp)
	return nil
}

func (r *operationRepo) List(_ context.Context) ([]*entity.Operation, error) {
	list := make([]*entity.Operation, len(r.st.operations))
	for i, op := range r.st.operations {
		cp := *op
		list[i] = &cp
	}
	return list, nil
}

// ── Repos sobre el estado confirmado (fuera de Run) ──────────────────────────

type storeBalance struct{ s *Store }

func (r *storeBalance) Get(ctx context.Context) (b *entity.AccountBalance, err error) {
	err = r.s.view(func(st *state) error {
		b, err = (&balanceRepo{st: st}).Get(ctx)
		return err
	})
	return b, err
}

func (r *storeBalance) GetForUpdate(ctx context.Context) (*entity.AccountBalance, error) {
	return r.Get(ctx)
}

func (r *storeBalance) Update(ctx context.Context, balance *entity.AccountBalance) error {
	return r.s.Run(ctx, func(br repository.BalanceRepository, _ repository.InventoryRepository, _ repository.OperationRepository) error {
		return br.Update(ctx, balance)
	})
}

func (r *storeBalance) EnsureInitialized(ctx context.Context) (created bool, err error) {
	err = r.s.Run(ctx, func(br repository.BalanceRepository, _ repository.InventoryRepository, _ repository.OperationRepository) error {
		created, err = br.EnsureInitialized(ctx)
		return err
	})
	return created, err
}

type storeInventory struct{ s *Store }

func (r *storeInventory) List(ctx context.Context) (list []*entity.InventoryItem, err error) {
	err = r.s.view(func(st *state) error {
		list, err = (&inventoryRepo{st: st}).List(ctx)
		return err
	})
	return list, err
}

func (r *storeInventory) GetByProduct(ctx context.Context, product string) (it *entity.InventoryItem, err error) {
	err = r.s.view(func(st *state) error {
		it, err = (&inventoryRepo{st: st}).GetByProduct(ctx, product)
		return err
	})
	return it, err
}

func (r *storeInventory) GetByProductForUpdate(ctx context.Context, product string) (*entity.InventoryItem, error) {
	return r.GetByProduct(ctx, product)
}

func (r *storeInventory) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.s.Run(ctx, func(_ repository.BalanceRepository, ir repository.InventoryRepository, _ repository.OperationRepository) error {
		return ir.Create(ctx, item)
	})
}

func (r *storeInventory) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.s.Run(ctx, func(_ repository.BalanceRepository, ir repository.InventoryRepository, _ repository.OperationRepository) error {
		return ir.Update(ctx, item)
	})
}

func (r *storeInventory) Delete(ctx context.Context, id int64) error {
	return r.s.Run(ctx, func(_ repository.BalanceRepository, ir repository.InventoryRepository, _ repository.OperationRepository) error {
		return ir.Delete(ctx, id)
	})
}

type storeOperations struct{ s *Store }

func (r *storeOperations) Create(ctx context.Context, op *entity.Operation) error {
	return r.s.Run(ctx, func(_ repository.BalanceRepository, _ repository.InventoryRepository, or repository.OperationRepository) error {
		return or.Create(ctx, op)
	})
}

func (r *storeOperations) List(ctx context.Context) (list []*entity.Operation, err error) {
	err = r.s.view(func(st *state) error {
		list, err = (&operationRepo{st: st}).List(ctx)
		return err
	})
	return list, err
}
