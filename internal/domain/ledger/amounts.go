// Package ledger contiene los cálculos puros del libro de operaciones
// (totales y textos del historial), sin dependencias de infraestructura.
package ledger

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// Acciones aceptadas para ajustar el saldo.
const (
	ActionAdd      = "add"
	ActionSubtract = "subtract"
)

// Límites de montos, precios y saldos: columnas NUMERIC(14, 2).
const (
	MaxFractionDigits = 2
	MaxIntegerDigits  = 12
)

// ValidAmount indica si d se puede guardar sin redondeo ni desbordamiento:
// como máximo dos decimales significativos y |d| < 10^12.
// Solo mira coeficiente y exponente, así que no cuesta nada con exponentes enormes.
func ValidAmount(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if d.IsZero() {
		return exp <= MaxIntegerDigits && exp >= -MaxIntegerDigits
	}
	digits := int64(d.NumDigits())
	if digits+exp > MaxIntegerDigits {
		return false
	}
	if exp >= -MaxFractionDigits {
		return true
	}
	// "1.500" vale; "0.005" no.
	if -MaxFractionDigits-exp >= digits {
		return false
	}
	return d.Equal(d.Round(MaxFractionDigits))
}

// AmountText representación de d para mensajes. Fuera de rango usa notación
// coeficiente/exponente para no expandir millones de ceros.
func AmountText(d decimal.Decimal) string {
	if ValidAmount(d) {
		return d.String()
	}
	return d.Coefficient().String() + "e" + strconv.FormatInt(int64(d.Exponent()), 10)
}

// LineTotal = precio unitario * cantidad.
func LineTotal(unitPrice decimal.Decimal, qty int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(qty))
}

// Euro formatea un monto con el símbolo usado en el historial: "€ 12.50".
func Euro(amount decimal.Decimal) string {
	return "€ " + amount.StringFixed(2)
}

// BalanceDetails texto del historial para un ajuste de saldo.
func BalanceDetails(action string, amount decimal.Decimal) string {
	verb := "Added"
	if action == ActionSubtract {
		verb = "Subtracted"
	}
	return fmt.Sprintf("%s %s", verb, Euro(amount))
}

// SaleDetails texto del historial para una venta.
func SaleDetails(qty int64, product string, unitPrice, total decimal.Decimal) string {
	return fmt.Sprintf("Sold %d of %s at %s each for %s", qty, product, Euro(unitPrice), Euro(total))
}

// PurchaseDetails texto del historial para una compra.
func PurchaseDetails(qty int64, product string, unitPrice, total decimal.Decimal) string {
	return fmt.Sprintf("Purchased %d of %s at %s each for %s", qty, product, Euro(unitPrice), Euro(total))
}

// StockValue valor total del inventario al precio registrado de cada producto.
func StockValue(items []*entity.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value())
	}
	return total
}
