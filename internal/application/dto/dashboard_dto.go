package dto

import "github.com/shopspring/decimal"

// InventoryItemDTO fila del inventario tal como se muestra en el dashboard.
type InventoryItemDTO struct {
	Product  string          `json:"product"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"` // Quantity * Price
}

// DashboardDTO respuesta de GET / y GET /api/dashboard.
type DashboardDTO struct {
	Balance    decimal.Decimal    `json:"balance"`
	StockValue decimal.Decimal    `json:"stock_value"`
	Inventory  []InventoryItemDTO `json:"inventory"`
}
