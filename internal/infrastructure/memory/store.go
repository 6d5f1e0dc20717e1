// Package memory implementa el almacén de registros en memoria del proceso.
// Sirve para desarrollo sin PostgreSQL (STORAGE_DRIVER=memory) y para los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ warehouse.TxRunner = (*Store)(nil)

// state contenido completo del almacén. Se copia para cada transacción.
type state struct {
	balance    *entity.AccountBalance
	items      map[int64]*entity.InventoryItem
	operations []*entity.Operation
	nextItemID int64
	nextOpID   int64
}

func newState() *state {
	return &state{items: make(map[int64]*entity.InventoryItem), nextItemID: 1, nextOpID: 1}
}

func (s *state) clone() *state {
	c := &state{
		items:      make(map[int64]*entity.InventoryItem, len(s.items)),
		operations: make([]*entity.Operation, len(s.operations)),
		nextItemID: s.nextItemID,
		nextOpID:   s.nextOpID,
	}
	if s.balance != nil {
		b := *s.balance
		c.balance = &b
	}
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	// Las operaciones son inmutables: basta copiar los punteros.
	copy(c.operations, s.operations)
	return c
}

// Store almacén en memoria. Las transacciones se serializan con un mutex y
// trabajan sobre una copia que solo se publica si la función no devuelve error.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío (sin fila de saldo: llamar EnsureInitialized).
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn con repositorios sobre una copia del estado; Commit si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(
	balanceRepo repository.BalanceRepository,
	inventoryRepo repository.InventoryRepository,
	operationRepo repository.OperationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&balanceRepo{st: work}, &inventoryRepo{st: work}, &operationRepo{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// view ejecuta fn con el estado confirmado bajo el mutex (lecturas fuera de transacción).
func (s *Store) view(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// BalanceRepository repositorio de saldo fuera de transacción.
func (s *Store) BalanceRepository() repository.BalanceRepository { return &storeBalance{s: s} }

// InventoryRepository repositorio de inventario fuera de transacción.
func (s *Store) InventoryRepository() repository.InventoryRepository { return &storeInventory{s: s} }

// OperationRepository repositorio de historial fuera de transacción.
func (s *Store) OperationRepository() repository.OperationRepository { return &storeOperations{s: s} }
