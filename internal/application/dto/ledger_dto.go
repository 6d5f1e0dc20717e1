package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// AdjustBalanceRequest formulario/body para POST /balance y POST /api/balance.
// Los montos llegan como texto y se validan en el handler.
type AdjustBalanceRequest struct {
	Action string `json:"action" form:"action"`
	Amount string `json:"amount" form:"amount"`
}

// SaleRequest formulario/body para POST /sale y POST /api/sales.
type SaleRequest struct {
	Product  string `json:"product" form:"product"`
	Quantity string `json:"quantity" form:"quantity"`
	Price    string `json:"price" form:"price"`
}

// PurchaseRequest formulario/body para POST /purchase y POST /api/purchases.
type PurchaseRequest struct {
	Product  string `json:"product" form:"product"`
	Price    string `json:"price" form:"price"`
	Quantity string `json:"quantity" form:"quantity"`
}

// OperationDTO entrada del historial.
type OperationDTO struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOperationDTO convierte la entidad en su representación JSON.
func NewOperationDTO(op *entity.Operation) OperationDTO {
	return OperationDTO{ID: op.ID, Type: op.Type, Details: op.Details, CreatedAt: op.CreatedAt}
}

// NewOperationList convierte una lista de operaciones conservando el orden.
func NewOperationList(ops []*entity.Operation) []OperationDTO {
	out := make([]OperationDTO, 0, len(ops))
	for _, op := range ops {
		out = append(out, NewOperationDTO(op))
	}
	return out
}

// BalanceResponse respuesta de POST /api/balance.
type BalanceResponse struct {
	Message   string          `json:"message"`
	Balance   decimal.Decimal `json:"balance"`
	Operation OperationDTO    `json:"operation"`
}

// SaleResponse respuesta de POST /api/sales.
type SaleResponse struct {
	Message   string          `json:"message"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
	Remaining int64           `json:"remaining"`
	Operation OperationDTO    `json:"operation"`
}

// PurchaseResponse respuesta de POST /api/purchases.
type PurchaseResponse struct {
	Message   string          `json:"message"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
	Stock     int64           `json:"stock"`
	Operation OperationDTO    `json:"operation"`
}
