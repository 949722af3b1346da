package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// InventoryHandler ajustes, kardex y alertas de stock (protegido).
type InventoryHandler struct {
	stock  *inventory.StockUseCase
	alerts *inventory.AlertUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, alerts *inventory.AlertUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, alerts: alerts}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, delta (+/-), reason, force"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.AdjustStock(c.UserContext(), GetUserID(c), in.ProductID, in.Delta, in.Reason, in.Force)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Kardex de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "in | out | adjustment_in | adjustment_out"
// @Param        from        query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to          query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	page := pageFromQuery(c)
	out, err := h.stock.ListMovements(c.UserContext(), repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock
// @Description  Sin status devuelve low y critical, los más urgentes primero, con la sugerencia de reposición.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "low | critical | normal"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alerts.ListAlerts(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AlertListResponse{Items: out})
}

// AlertSummary godoc
// @Summary      Resumen de alertas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertSummaryResponse
// @Router       /api/inventory/alerts/summary [get]
func (h *InventoryHandler) AlertSummary(c *fiber.Ctx) error {
	out, err := h.alerts.EvaluateAlerts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
