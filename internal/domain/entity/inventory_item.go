package entity

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxProductNameLen longitud máxima del nombre de producto (columna inventory.product).
const MaxProductNameLen = 80

// InventoryItem existencia de un producto. Product es único; la fila se elimina
// cuando Quantity llega a cero. Price es el precio unitario de la primera compra.
type InventoryItem struct {
	ID       int64
	Product  string
	Quantity int64
	Price    decimal.Decimal
}

// NormalizeProductName recorta espacios del nombre y valida longitud.
// Devuelve ok=false si el nombre queda vacío o supera MaxProductNameLen.
func NormalizeProductName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxProductNameLen {
		return name, false
	}
	return name, true
}

// Value valor del stock al precio registrado (Quantity * Price).
func (i *InventoryItem) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Remove descuenta qty del stock. Devuelve true si el producto quedó agotado.
func (i *InventoryItem) Remove(qty int64) (soldOut bool) {
	i.Quantity -= qty
	return i.Quantity == 0
}

// Restock suma qty al stock. El precio registrado no cambia.
// Devuelve false, sin modificar nada, si la suma desborda int64.
func (i *InventoryItem) Restock(qty int64) bool {
	if qty > math.MaxInt64-i.Quantity {
		return false
	}
	i.Quantity += qty
	return true
}
