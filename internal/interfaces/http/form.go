package http

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/ledger"
)

// parseDecimal interpreta un monto o precio del formulario. Acepta coma decimal ("5,50").
// Rechaza más de dos decimales y valores de 10^12 o más.
func parseDecimal(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !ledger.ValidAmount(d) {
		return decimal.Zero, domain.Invalid(field, raw)
	}
	return d, nil
}

// parseQuantity interpreta una cantidad entera del formulario.
func parseQuantity(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, domain.Invalid("quantity", raw)
	}
	return n, nil
}

func adjustBalanceInput(in dto.AdjustBalanceRequest) (warehouse.AdjustBalanceInput, error) {
	amount, err := parseDecimal("amount", in.Amount)
	if err != nil {
		return warehouse.AdjustBalanceInput{}, err
	}
	return warehouse.AdjustBalanceInput{Action: strings.ToLower(strings.TrimSpace(in.Action)), Amount: amount}, nil
}

func saleInput(in dto.SaleRequest) (warehouse.SaleInput, error) {
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return warehouse.SaleInput{}, err
	}
	price, err := parseDecimal("price", in.Price)
	if err != nil {
		return warehouse.SaleInput{}, err
	}
	return warehouse.SaleInput{Product: in.Product, Quantity: qty, UnitPrice: price}, nil
}

func purchaseInput(in dto.PurchaseRequest) (warehouse.PurchaseInput, error) {
	price, err := parseDecimal("price", in.Price)
	if err != nil {
		return warehouse.PurchaseInput{}, err
	}
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return warehouse.PurchaseInput{}, err
	}
	return warehouse.PurchaseInput{Product: in.Product, UnitPrice: price, Quantity: qty}, nil
}
