package warehouse_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/ledger"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu  sync.Mutex
	ops []*entity.Operation
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, op *entity.Operation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, op)
	return p.err
}

type fixture struct {
	store    *memory.Store
	events   *recordingPublisher
	balance  *warehouse.BalanceUseCase
	sale     *warehouse.SaleUseCase
	purchase *warehouse.PurchaseUseCase
	history  *warehouse.HistoryUseCase
	board    *warehouse.DashboardUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	_, err := store.BalanceRepository().EnsureInitialized(context.Background())
	require.NoError(t, err)

	events := &recordingPublisher{}
	log := logger.Nop()
	return &fixture{
		store:    store,
		events:   events,
		balance:  warehouse.NewBalanceUseCase(store, store.BalanceRepository(), events, log),
		sale:     warehouse.NewSaleUseCase(store, events, log),
		purchase: warehouse.NewPurchaseUseCase(store, events, log),
		history:  warehouse.NewHistoryUseCase(store.OperationRepository(), store.BalanceRepository(), nil),
		board:    warehouse.NewDashboardUseCase(store.BalanceRepository(), store.InventoryRepository()),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// snapshot estado persistido completo para comparar antes/después.
type snapshot struct {
	balance string
	items   []entity.InventoryItem
	ops     int
}

func (f *fixture) snapshot(t *testing.T) snapshot {
	t.Helper()
	ctx := context.Background()
	b, err := f.store.BalanceRepository().Get(ctx)
	require.NoError(t, err)
	items, err := f.store.InventoryRepository().List(ctx)
	require.NoError(t, err)
	ops, err := f.store.OperationRepository().List(ctx)
	require.NoError(t, err)

	s := snapshot{balance: b.Balance.String(), ops: len(ops)}
	for _, it := range items {
		s.items = append(s.items, *it)
	}
	return s
}

func (f *fixture) deposit(t *testing.T, amount string) {
	t.Helper()
	_, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec(amount)})
	require.NoError(t, err)
}

func (f *fixture) item(t *testing.T, product string) *entity.InventoryItem {
	t.Helper()
	it, err := f.store.InventoryRepository().GetByProduct(context.Background(), product)
	require.NoError(t, err)
	return it
}

// seed crea un producto directamente en el almacén, sin pasar por una compra.
func (f *fixture) seed(t *testing.T, item *entity.InventoryItem) {
	t.Helper()
	err := f.store.Run(context.Background(), func(
		_ repository.BalanceRepository,
		inventoryRepo repository.InventoryRepository,
		_ repository.OperationRepository,
	) error {
		return inventoryRepo.Create(context.Background(), item)
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustBalance_SumarYRestar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.balance.AdjustBalance(ctx, warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec("100.50")})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("100.50")))
	assert.Equal(t, entity.OperationTypeBalance, res.Operation.Type)
	assert.Equal(t, "Added € 100.50", res.Operation.Details)

	res, err = f.balance.AdjustBalance(ctx, warehouse.AdjustBalanceInput{Action: ledger.ActionSubtract, Amount: dec("0.50")})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("100")))
	assert.Equal(t, "Subtracted € 0.50", res.Operation.Details)

	ops, err := f.history.ListOperations(ctx)
	require.NoError(t, err)
	assert.Len(t, ops, 2, "una operación Balance por ajuste")
	assert.Len(t, f.events.ops, 2, "cada operación confirmada se publica")
}

func TestAdjustBalance_RestarSinPiso(t *testing.T) {
	f := newFixture(t)
	res, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionSubtract, Amount: dec("30")})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("-30")), "el saldo puede quedar negativo")
}

func TestAdjustBalance_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)

	cases := []warehouse.AdjustBalanceInput{
		{Action: "multiply", Amount: dec("1")},
		{Action: ledger.ActionAdd, Amount: decimal.Zero},
		{Action: ledger.ActionAdd, Amount: dec("-5")},
	}
	for _, in := range cases {
		_, err := f.balance.AdjustBalance(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, before, f.snapshot(t))
	assert.Empty(t, f.events.ops)
}

func TestGetBalance(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "12.34")
	got, err := f.balance.GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.34")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_SaldoInsuficiente(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)

	_, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, warehouse.MsgInsufficientFunds, warehouse.Message(err, "Widget"))
	assert.Equal(t, before, f.snapshot(t), "un rechazo no modifica el estado")
}

func TestRecordPurchase_ProductoNuevo(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")

	res, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: " Widget ", UnitPrice: dec("5"), Quantity: 10})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.Total.Equal(dec("50")))
	assert.True(t, res.Balance.Equal(dec("50")))
	assert.Equal(t, "Purchased 10 of Widget at € 5.00 each for € 50.00", res.Operation.Details)

	it := f.item(t, "Widget")
	require.NotNil(t, it)
	assert.Equal(t, int64(10), it.Quantity)
	assert.True(t, it.Price.Equal(dec("5")))
}

func TestRecordPurchase_ReposicionConservaPrecio(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "1000")
	ctx := context.Background()

	_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.NoError(t, err)
	res, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("8"), Quantity: 5})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, int64(15), res.Stock)
	assert.True(t, res.Balance.Equal(dec("910")), "1000 - 50 - 40")

	it := f.item(t, "Widget")
	assert.Equal(t, int64(15), it.Quantity)
	assert.True(t, it.Price.Equal(dec("5")), "el precio registrado no se actualiza al reponer")
}

func TestRecordPurchase_CostoIgualAlSaldo(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "50")
	res, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.NoError(t, err)
	assert.True(t, res.Balance.IsZero())
}

func TestRecordPurchase_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	cases := []warehouse.PurchaseInput{
		{Product: "", UnitPrice: dec("1"), Quantity: 1},
		{Product: "Widget", UnitPrice: dec("0"), Quantity: 1},
		{Product: "Widget", UnitPrice: dec("1"), Quantity: 0},
		{Product: "Widget", UnitPrice: dec("1"), Quantity: -3},
	}
	for _, in := range cases {
		_, err := f.purchase.RecordPurchase(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)

	_, err := f.sale.RecordSale(context.Background(), warehouse.SaleInput{Product: "Gadget", Quantity: 1, UnitPrice: dec("1")})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, "Gadget is not available in the inventory.", warehouse.Message(err, "Gadget"))
	assert.Equal(t, before, f.snapshot(t))
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	_, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 3})
	require.NoError(t, err)
	before := f.snapshot(t)

	_, err = f.sale.RecordSale(context.Background(), warehouse.SaleInput{Product: "Widget", Quantity: 4, UnitPrice: dec("7")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient quantity of Widget in the inventory.", warehouse.Message(err, "Widget"))
	assert.Equal(t, before, f.snapshot(t))
}

func TestRecordSale_Parcial(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	ctx := context.Background()
	_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.NoError(t, err)

	res, err := f.sale.RecordSale(ctx, warehouse.SaleInput{Product: "Widget", Quantity: 4, UnitPrice: dec("2.5")})
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Remaining)
	assert.True(t, res.Total.Equal(dec("10")))
	assert.True(t, res.Balance.Equal(dec("60")))
	assert.Equal(t, "Sold 4 of Widget at € 2.50 each for € 10.00", res.Operation.Details)
	assert.Equal(t, int64(6), f.item(t, "Widget").Quantity)
}

// Escenario completo: saldo 0 → compra rechazada; saldo 100 → compra; venta total elimina el producto.
func TestEscenario_CompraVentaTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	f.deposit(t, "100")
	res, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("50")))

	sale, err := f.sale.RecordSale(ctx, warehouse.SaleInput{Product: "Widget", Quantity: 10, UnitPrice: dec("7")})
	require.NoError(t, err)
	assert.True(t, sale.Balance.Equal(dec("120")))
	assert.Zero(t, sale.Remaining)
	assert.Nil(t, f.item(t, "Widget"), "el producto agotado se elimina")

	ops, err := f.history.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3, "la compra rechazada no aparece en el historial")
	assert.Equal(t, entity.OperationTypeBalance, ops[0].Type)
	assert.Equal(t, entity.OperationTypePurchase, ops[1].Type)
	assert.Equal(t, entity.OperationTypeSale, ops[2].Type)

	board, err := f.board.GetDashboard(ctx)
	require.NoError(t, err)
	assert.True(t, board.Balance.Equal(dec("120")))
	assert.Empty(t, board.Inventory)
}

func TestRechazosRepetidos_SonIdempotentes(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "10")
	ctx := context.Background()
	before := f.snapshot(t)

	for i := 0; i < 5; i++ {
		_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("5"), Quantity: 10})
		require.Error(t, err)
		_, err = f.sale.RecordSale(ctx, warehouse.SaleInput{Product: "Widget", Quantity: 1, UnitPrice: dec("1")})
		require.Error(t, err)
	}
	assert.Equal(t, before, f.snapshot(t))
}

func TestPublicacionFallida_NoAfectaLaOperacion(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("nats caído")

	res, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec("5")})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("5")))
}

func TestVentasConcurrentes_NoSobrevenden(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	ctx := context.Background()
	_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("1"), Quantity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.sale.RecordSale(ctx, warehouse.SaleInput{Product: "Widget", Quantity: 1, UnitPrice: dec("2")}); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, okCount)
	assert.Nil(t, f.item(t, "Widget"))
	board, err := f.board.GetDashboard(ctx)
	require.NoError(t, err)
	assert.True(t, board.Balance.Equal(dec("110")), "90 + 10 ventas de 2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard / historial
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboard_ValorDeStock(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	ctx := context.Background()
	_, err := f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "A", UnitPrice: dec("2"), Quantity: 3})
	require.NoError(t, err)
	_, err = f.purchase.RecordPurchase(ctx, warehouse.PurchaseInput{Product: "B", UnitPrice: dec("1.5"), Quantity: 2})
	require.NoError(t, err)

	board, err := f.board.GetDashboard(ctx)
	require.NoError(t, err)
	require.Len(t, board.Inventory, 2)
	assert.Equal(t, "A", board.Inventory[0].Product)
	assert.True(t, board.Inventory[0].Value.Equal(dec("6")))
	assert.True(t, board.StockValue.Equal(dec("9")))
	assert.True(t, board.Balance.Equal(dec("91")))
}

func TestExportPDF_SinGenerador(t *testing.T) {
	f := newFixture(t)
	_, err := f.history.ExportPDF(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessage_Validacion(t *testing.T) {
	assert.Equal(t, "Invalid amount: abc.", warehouse.Message(domain.Invalid("amount", "abc"), ""))
	assert.Equal(t, warehouse.MsgUnexpectedFailure, warehouse.Message(errors.New("db down"), ""))
	assert.Empty(t, warehouse.Message(nil, ""))
	assert.False(t, warehouse.IsRejection(errors.New("db down")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Límites de montos (NUMERIC(14, 2))
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustBalance_MontoFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "10")
	before := f.snapshot(t)

	for _, amount := range []string{"0.005", "1.234", "1e13", "1e20000000"} {
		_, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}
	_, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec("0.005")})
	assert.Equal(t, "Invalid amount: 0.005.", warehouse.Message(err, ""))

	assert.Equal(t, before, f.snapshot(t), "ni saldo ni historial cambian")
}

func TestAdjustBalance_CeroFinalesSonValidos(t *testing.T) {
	f := newFixture(t)
	res, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec("1.500")})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("1.5")))
	assert.Equal(t, "Added € 1.50", res.Operation.Details)
}

func TestAdjustBalance_SaldoResultanteFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "999999999999.99")
	before := f.snapshot(t)

	_, err := f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionAdd, Amount: dec("0.01")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, before, f.snapshot(t))

	_, err = f.balance.AdjustBalance(context.Background(), warehouse.AdjustBalanceInput{Action: ledger.ActionSubtract, Amount: dec("999999999999.99")})
	require.NoError(t, err, "restar dentro del rango sigue funcionando")
}

func TestRecordPurchase_PrecioFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	before := f.snapshot(t)

	for _, price := range []string{"0.004", "1e13"} {
		_, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Dust", UnitPrice: dec(price), Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, price)
	}
	_, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Dust", UnitPrice: dec("0.004"), Quantity: 1})
	assert.Equal(t, "Invalid price: 0.004.", warehouse.Message(err, "Dust"))

	assert.Equal(t, before, f.snapshot(t))
	assert.Nil(t, f.item(t, "Dust"))
}

func TestRecordPurchase_ReposicionQueDesbordaLaCantidad(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "100")
	f.seed(t, &entity.InventoryItem{Product: "Widget", Quantity: math.MaxInt64 - 1, Price: dec("1")})
	before := f.snapshot(t)

	_, err := f.purchase.RecordPurchase(context.Background(), warehouse.PurchaseInput{Product: "Widget", UnitPrice: dec("1"), Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid quantity: 5.", warehouse.Message(err, "Widget"))
	assert.Equal(t, before, f.snapshot(t), "el débito se deshace con la transacción")
	assert.Equal(t, int64(math.MaxInt64-1), f.item(t, "Widget").Quantity)
}

func TestRecordSale_PrecioFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &entity.InventoryItem{Product: "Widget", Quantity: 10, Price: dec("1")})
	before := f.snapshot(t)

	for _, price := range []string{"0.004", "1e13", "1e20000000"} {
		_, err := f.sale.RecordSale(context.Background(), warehouse.SaleInput{Product: "Widget", Quantity: 1, UnitPrice: dec(price)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, price)
	}
	assert.Equal(t, before, f.snapshot(t))
}

func TestRecordSale_TotalQueDesbordaElSaldo(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "999999999990")
	f.seed(t, &entity.InventoryItem{Product: "Widget", Quantity: 10, Price: dec("1")})
	before := f.snapshot(t)

	_, err := f.sale.RecordSale(context.Background(), warehouse.SaleInput{Product: "Widget", Quantity: 10, UnitPrice: dec("5")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid total: 50.", warehouse.Message(err, "Widget"))
	assert.Equal(t, before, f.snapshot(t), "el producto no se elimina si la venta se rechaza")
}
