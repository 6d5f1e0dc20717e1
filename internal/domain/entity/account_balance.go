package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalanceID identificador fijo de la única fila de saldo.
const AccountBalanceID int64 = 1

// AccountBalance saldo de caja del almacén. Existe exactamente una instancia
// (ID = AccountBalanceID) creada al iniciar con saldo 0; nunca se elimina.
type AccountBalance struct {
	ID        int64
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

// NewAccountBalance devuelve el saldo inicial (0) con el ID bien conocido.
func NewAccountBalance(now time.Time) *AccountBalance {
	return &AccountBalance{ID: AccountBalanceID, Balance: decimal.Zero, UpdatedAt: now}
}

// Credit suma amount al saldo.
func (b *AccountBalance) Credit(amount decimal.Decimal) {
	b.Balance = b.Balance.Add(amount)
}

// Debit resta amount al saldo. No hay piso: el saldo puede quedar negativo.
func (b *AccountBalance) Debit(amount decimal.Decimal) {
	b.Balance = b.Balance.Sub(amount)
}

// Covers indica si el saldo alcanza para pagar amount.
func (b *AccountBalance) Covers(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(b.Balance)
}
