package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/loyalty"
	"github.com/jhoicas/Inventario-pos/internal/application/usecase"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// CustomerHandler clientes y su cuenta de fidelización.
type CustomerHandler struct {
	uc      *usecase.CustomerUseCase
	loyalty *loyalty.LoyaltyUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, loyaltyUC *loyalty.LoyaltyUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, loyalty: loyaltyUC}
}

// Create godoc
// @Summary      Crear cliente
// @Description  Con is_loyalty=true se inscribe en la misma transacción.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetLoyalty godoc
// @Summary      Cuenta de fidelización
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.LoyaltyAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/loyalty [get]
func (h *CustomerHandler) GetLoyalty(c *fiber.Ctx) error {
	out, err := h.loyalty.GetLoyaltyAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EnrollLoyalty godoc
// @Summary      Inscribir en fidelización
// @Description  Asigna número de tarjeta. Volver a inscribir conserva tarjeta y puntos.
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.LoyaltyAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/loyalty [post]
func (h *CustomerHandler) EnrollLoyalty(c *fiber.Ctx) error {
	out, err := h.loyalty.EnrollLoyalty(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DisableLoyalty godoc
// @Summary      Desactivar fidelización
// @Description  Conserva tarjeta y puntos.
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.LoyaltyAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/loyalty [delete]
func (h *CustomerHandler) DisableLoyalty(c *fiber.Ctx) error {
	out, err := h.loyalty.DisableLoyalty(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddPoints godoc
// @Summary      Sumar puntos
// @Description  points debe ser un entero positivo; otro valor responde INVALID_POINT_AMOUNT.
// @Tags         loyalty
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del cliente"
// @Param        body  body  dto.AddPointsRequest  true  "Puntos a sumar"
// @Success      200   {object}  dto.LoyaltyAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/loyalty/points [post]
func (h *CustomerHandler) AddPoints(c *fiber.Ctx) error {
	var in dto.AddPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	points, ok := in.WholePoints()
	if !ok {
		return respondError(c, domain.ErrInvalidPointAmount)
	}
	out, err := h.loyalty.AddLoyaltyPoints(c.UserContext(), c.Params("id"), points)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
