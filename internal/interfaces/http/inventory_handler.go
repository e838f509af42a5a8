package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// InventoryHandler handles stocking positions, the health summary and alerts.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Open a stocking position
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "Position data"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a stocking position by ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Position ID"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a stocking position
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Position ID"
// @Param        body  body  dto.UpdateInventoryRequest  true  "Fields to update"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List stocking positions
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Status filter (normal, low, critical, excess)"
// @Param        product_id  query  int     false  "Product filter"
// @Param        location    query  string  false  "Location filter"
// @Param        page        query  int     false  "Page"       default(1)
// @Param        page_size   query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.InventoryResponse]
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var productID *int64
	if v := c.QueryInt("product_id", 0); v > 0 {
		id := int64(v)
		productID = &id
	}
	out, err := h.uc.List(c.Context(), c.Query("status"), productID, c.Query("location"), pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Health godoc
// @Summary      Inventory health summary
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryHealthResponse
// @Router       /api/v1/inventory/health [get]
func (h *InventoryHandler) Health(c *fiber.Ctx) error {
	out, err := h.uc.Health(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Positions at or below their alert thresholds
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryAlertResponse
// @Router       /api/v1/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
