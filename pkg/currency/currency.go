// Package currency formatea montos decimales para mostrarlos al usuario.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCode moneda por defecto del almacén.
const DefaultCode = money.EUR

// Formatter formatea montos en una moneda fija.
type Formatter struct {
	code     string
	fraction int32
}

// NewFormatter devuelve un formateador para code (ISO 4217). Códigos desconocidos usan EUR.
func NewFormatter(code string) Formatter {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		code = DefaultCode
		cur = money.GetCurrency(code)
	}
	return Formatter{code: code, fraction: int32(cur.Fraction)}
}

// Code código ISO de la moneda.
func (f Formatter) Code() string { return f.code }

// maxMinorDigits dígitos enteros que caben siempre en un int64 de unidades menores.
const maxMinorDigits = 18

// Format devuelve el monto con símbolo y separadores, p. ej. "€1,234.50".
// Montos que no caben en un int64 de céntimos se muestran como "EUR 123...00".
func (f Formatter) Format(amount decimal.Decimal) string {
	if amount.IsZero() {
		amount = decimal.Zero
	}
	minor := amount.Shift(f.fraction)
	if int64(minor.NumDigits())+int64(minor.Exponent()) > maxMinorDigits {
		return f.code + " " + amount.StringFixed(f.fraction)
	}
	return money.New(minor.Round(0).IntPart(), f.code).Display()
}
