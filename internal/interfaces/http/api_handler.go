package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/warehouse"
)

// APIHandler expone las mismas operaciones en JSON bajo /api.
type APIHandler struct {
	balance   *warehouse.BalanceUseCase
	sale      *warehouse.SaleUseCase
	purchase  *warehouse.PurchaseUseCase
	history   *warehouse.HistoryUseCase
	dashboard *warehouse.DashboardUseCase
}

// NewAPIHandler construye el handler.
func NewAPIHandler(deps RouterDeps) *APIHandler {
	return &APIHandler{
		balance:   deps.BalanceUC,
		sale:      deps.SaleUC,
		purchase:  deps.PurchaseUC,
		history:   deps.HistoryUC,
		dashboard: deps.DashboardUC,
	}
}

// errorJSON responde los rechazos con su código; los fallos de infraestructura van al
// ErrorHandler, que los registra y no expone el detalle.
func errorJSON(c *fiber.Ctx, err error, product string) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		return err
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: warehouse.Message(err, product)})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// GetDashboard GET /api/dashboard.
func (h *APIHandler) GetDashboard(c *fiber.Ctx) error {
	board, err := h.dashboard.GetDashboard(c.UserContext())
	if err != nil {
		return errorJSON(c, err, "")
	}
	return c.JSON(board)
}

// ListOperations GET /api/operations: historial completo, sin paginación.
func (h *APIHandler) ListOperations(c *fiber.Ctx) error {
	ops, err := h.history.ListOperations(c.UserContext())
	if err != nil {
		return errorJSON(c, err, "")
	}
	return c.JSON(fiber.Map{
		"total":      len(ops),
		"operations": dto.NewOperationList(ops),
	})
}

// AdjustBalance POST /api/balance: body {"action": "add|subtract", "amount": "10.5"}.
func (h *APIHandler) AdjustBalance(c *fiber.Ctx) error {
	var in dto.AdjustBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := adjustBalanceInput(in)
	if err != nil {
		return errorJSON(c, err, "")
	}
	res, err := h.balance.AdjustBalance(c.UserContext(), input)
	if err != nil {
		return errorJSON(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{
		Message:   warehouse.MsgBalanceAdjusted,
		Balance:   res.Balance,
		Operation: dto.NewOperationDTO(res.Operation),
	})
}

// RecordSale POST /api/sales: body {"product", "quantity", "price"}.
func (h *APIHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := saleInput(in)
	if err != nil {
		return errorJSON(c, err, in.Product)
	}
	res, err := h.sale.RecordSale(c.UserContext(), input)
	if err != nil {
		return errorJSON(c, err, in.Product)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		Message:   warehouse.MsgSaleRecorded,
		Total:     res.Total,
		Balance:   res.Balance,
		Remaining: res.Remaining,
		Operation: dto.NewOperationDTO(res.Operation),
	})
}

// RecordPurchase POST /api/purchases: body {"product", "price", "quantity"}.
func (h *APIHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := purchaseInput(in)
	if err != nil {
		return errorJSON(c, err, in.Product)
	}
	res, err := h.purchase.RecordPurchase(c.UserContext(), input)
	if err != nil {
		return errorJSON(c, err, in.Product)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseResponse{
		Message:   warehouse.MsgPurchaseRecorded,
		Total:     res.Total,
		Balance:   res.Balance,
		Stock:     res.Stock,
		Operation: dto.NewOperationDTO(res.Operation),
	})
}
