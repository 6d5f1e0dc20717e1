package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain"
)

// PageHandler sirve las páginas HTML (formularios clásicos con POST).
type PageHandler struct {
	balance   *warehouse.BalanceUseCase
	sale      *warehouse.SaleUseCase
	purchase  *warehouse.PurchaseUseCase
	history   *warehouse.HistoryUseCase
	dashboard *warehouse.DashboardUseCase
}

// NewPageHandler construye el handler.
func NewPageHandler(deps RouterDeps) *PageHandler {
	return &PageHandler{
		balance:   deps.BalanceUC,
		sale:      deps.SaleUC,
		purchase:  deps.PurchaseUC,
		history:   deps.HistoryUC,
		dashboard: deps.DashboardUC,
	}
}

// render completa los datos comunes del layout (saldo) y renderiza la página.
func (h *PageHandler) render(c *fiber.Ctx, status int, page, title string, data fiber.Map) error {
	balance, err := h.balance.GetBalance(c.UserContext())
	if err != nil {
		return err
	}
	data["Title"] = title
	data["Balance"] = balance
	if _, ok := data["Message"]; !ok {
		data["Message"] = ""
	}
	return c.Status(status).Render(page, data, MainLayout)
}

// Dashboard GET /: inventario y saldo.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	board, err := h.dashboard.GetDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, fiber.StatusOK, "index", "Dashboard", fiber.Map{
		"Inventory":  board.Inventory,
		"StockValue": board.StockValue,
	})
}

// BalanceForm GET /balance. Tras el redirect del POST llega ?ok=1; el texto lo pone el servidor.
func (h *PageHandler) BalanceForm(c *fiber.Ctx) error {
	msg := ""
	if c.QueryBool("ok") {
		msg = warehouse.MsgBalanceAdjusted
	}
	return h.render(c, fiber.StatusOK, "balance", "Balance", fiber.Map{"Message": msg})
}

// AdjustBalance POST /balance: form action (add|subtract), amount.
// En éxito redirige a GET /balance (PRG) para evitar reenvíos del formulario.
func (h *PageHandler) AdjustBalance(c *fiber.Ctx) error {
	var form dto.AdjustBalanceRequest
	if err := c.BodyParser(&form); err != nil {
		return h.render(c, fiber.StatusBadRequest, "balance", "Balance", fiber.Map{"Message": "Invalid form."})
	}
	in, err := adjustBalanceInput(form)
	if err == nil {
		_, err = h.balance.AdjustBalance(c.UserContext(), in)
	}
	if err != nil {
		return h.failed(c, err, "balance", "Balance", "", fiber.Map{})
	}
	return c.Redirect("/balance?ok=1", fiber.StatusSeeOther)
}

// SaleForm GET /sale: formulario con el inventario disponible.
func (h *PageHandler) SaleForm(c *fiber.Ctx) error {
	return h.renderSale(c, fiber.StatusOK, dto.SaleRequest{}, "")
}

// RecordSale POST /sale: form product, quantity, price.
func (h *PageHandler) RecordSale(c *fiber.Ctx) error {
	var form dto.SaleRequest
	if err := c.BodyParser(&form); err != nil {
		return h.renderSale(c, fiber.StatusBadRequest, form, "Invalid form.")
	}
	in, err := saleInput(form)
	if err == nil {
		_, err = h.sale.RecordSale(c.UserContext(), in)
	}
	if err != nil {
		if !warehouse.IsRejection(err) {
			return err
		}
		status, _ := statusFor(err)
		return h.renderSale(c, status, form, warehouse.Message(err, form.Product))
	}
	return h.renderSale(c, fiber.StatusOK, dto.SaleRequest{}, warehouse.MsgSaleRecorded)
}

func (h *PageHandler) renderSale(c *fiber.Ctx, status int, form dto.SaleRequest, msg string) error {
	board, err := h.dashboard.GetDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, status, "sale", "Sale", fiber.Map{
		"Form":      form,
		"Inventory": board.Inventory,
		"Message":   msg,
	})
}

// PurchaseForm GET /purchase.
func (h *PageHandler) PurchaseForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "purchase", "Purchase", fiber.Map{"Form": dto.PurchaseRequest{}})
}

// RecordPurchase POST /purchase: form product, price, quantity.
func (h *PageHandler) RecordPurchase(c *fiber.Ctx) error {
	var form dto.PurchaseRequest
	if err := c.BodyParser(&form); err != nil {
		return h.render(c, fiber.StatusBadRequest, "purchase", "Purchase", fiber.Map{"Form": form, "Message": "Invalid form."})
	}
	in, err := purchaseInput(form)
	if err == nil {
		_, err = h.purchase.RecordPurchase(c.UserContext(), in)
	}
	if err != nil {
		return h.failed(c, err, "purchase", "Purchase", form.Product, fiber.Map{"Form": form})
	}
	return h.render(c, fiber.StatusOK, "purchase", "Purchase", fiber.Map{
		"Form":    dto.PurchaseRequest{},
		"Message": warehouse.MsgPurchaseRecorded,
	})
}

// failed re-renderiza la página con el mensaje del rechazo; los errores de infraestructura
// se propagan al ErrorHandler de fiber.
func (h *PageHandler) failed(c *fiber.Ctx, err error, page, title, product string, data fiber.Map) error {
	if !warehouse.IsRejection(err) {
		return err
	}
	status, _ := statusFor(err)
	data["Message"] = warehouse.Message(err, product)
	return h.render(c, status, page, title, data)
}

// History GET /history: todas las operaciones en orden de inserción.
func (h *PageHandler) History(c *fiber.Ctx) error {
	ops, err := h.history.ListOperations(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, fiber.StatusOK, "history", "History", fiber.Map{"Operations": ops})
}

// HistoryPDF GET /history.pdf: exportación del historial.
func (h *PageHandler) HistoryPDF(c *fiber.Ctx) error {
	doc, err := h.history.ExportPDF(c.UserContext())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="history.pdf"`)
	return c.Send(doc)
}
