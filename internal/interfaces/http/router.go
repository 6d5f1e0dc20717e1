package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BalanceUC   *warehouse.BalanceUseCase
	SaleUC      *warehouse.SaleUseCase
	PurchaseUC  *warehouse.PurchaseUseCase
	HistoryUC   *warehouse.HistoryUseCase
	DashboardUC *warehouse.DashboardUseCase
}

// Router registra las páginas y la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	pages := NewPageHandler(deps)
	app.Get("/", pages.Dashboard)
	app.Get("/balance", pages.BalanceForm)
	app.Post("/balance", pages.AdjustBalance)
	app.Get("/sale", pages.SaleForm)
	app.Post("/sale", pages.RecordSale)
	app.Get("/purchase", pages.PurchaseForm)
	app.Post("/purchase", pages.RecordPurchase)
	app.Get("/history", pages.History)
	app.Get("/history.pdf", pages.HistoryPDF)

	api := app.Group("/api")
	apiHandler := NewAPIHandler(deps)
	api.Get("/dashboard", apiHandler.GetDashboard)
	api.Get("/operations", apiHandler.ListOperations)
	api.Post("/balance", apiHandler.AdjustBalance)
	api.Post("/sales", apiHandler.RecordSale)
	api.Post("/purchases", apiHandler.RecordPurchase)
}
