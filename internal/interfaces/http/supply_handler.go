package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// SupplyHandler handles supply plan CRUD, the approval workflow and the
// demand/supply gap analysis.
type SupplyHandler struct {
	uc *usecase.SupplyUseCase
}

// NewSupplyHandler builds the handler.
func NewSupplyHandler(uc *usecase.SupplyUseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Create a supply plan
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyPlanRequest  true  "Plan data"
// @Success      201   {object}  dto.SupplyPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/supply-plans [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a supply plan by ID
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Plan ID"
// @Success      200  {object}  dto.SupplyPlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/supply-plans/{id} [get]
func (h *SupplyHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Update a supply plan
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Plan ID"
// @Param        body  body  dto.UpdateSupplyPlanRequest  true  "Fields to update"
// @Success      200   {object}  dto.SupplyPlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/supply-plans/{id} [put]
func (h *SupplyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateSupplyPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submit a supply plan for approval
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Plan ID"
// @Success      200  {object}  dto.SupplyPlanResponse
// @Router       /api/v1/supply-plans/{id}/submit [post]
func (h *SupplyHandler) Submit(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Submit(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Approve a supply plan
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Plan ID"
// @Success      200  {object}  dto.SupplyPlanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/supply-plans/{id}/approve [post]
func (h *SupplyHandler) Approve(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Approve(c.Context(), id, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a supply plan
// @Tags         supply
// @Security     Bearer
// @Param        id  path  int  true  "Plan ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/supply-plans/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      List supply plans
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int     false  "Product filter"
// @Param        status       query  string  false  "Status filter"
// @Param        location     query  string  false  "Location filter"
// @Param        period_from  query  string  false  "Period lower bound (RFC 3339)"
// @Param        period_to    query  string  false  "Period upper bound (RFC 3339)"
// @Param        page         query  int     false  "Page"       default(1)
// @Param        page_size    query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.SupplyPlanResponse]
// @Router       /api/v1/supply-plans [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	var f dto.PlanFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(c.Context(), f, pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GapAnalysis godoc
// @Summary      Demand/supply gap per product for a period
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Period (RFC 3339); defaults to the current month"
// @Success      200  {array}  dto.GapAnalysisItem
// @Router       /api/v1/supply-plans/gap-analysis [get]
func (h *SupplyHandler) GapAnalysis(c *fiber.Ctx) error {
	var period *time.Time
	if raw := c.Query("period"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "period must be RFC 3339 or YYYY-MM-DD"})
		}
		period = &t
	}
	out, err := h.uc.GapAnalysis(c.Context(), period)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
