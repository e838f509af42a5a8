package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// DemandHandler handles demand plan CRUD and the submit/approve/reject workflow.
type DemandHandler struct {
	uc *usecase.DemandUseCase
}

// NewDemandHandler builds the handler.
func NewDemandHandler(uc *usecase.DemandUseCase) *DemandHandler {
	return &DemandHandler{uc: uc}
}

// Create godoc
// @Summary      Create a demand plan
// @Tags         demand
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDemandPlanRequest  true  "Plan data"
// @Success      201   {object}  dto.DemandPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans [post]
func (h *DemandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDemandPlanRequest
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
// @Summary      Get a demand plan by ID
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Plan ID"
// @Success      200  {object}  dto.DemandPlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id} [get]
func (h *DemandHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Update a demand plan
// @Tags         demand
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Plan ID"
// @Param        body  body  dto.UpdateDemandPlanRequest  true  "Fields to update"
// @Success      200   {object}  dto.DemandPlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id} [put]
func (h *DemandHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateDemandPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Record a manual adjustment of the forecast quantity
// @Tags         demand
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Plan ID"
// @Param        body  body  dto.AdjustDemandPlanRequest  true  "Adjusted quantity"
// @Success      200   {object}  dto.DemandPlanResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id}/adjust [post]
func (h *DemandHandler) Adjust(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.AdjustDemandPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Adjust(c.Context(), id, in.AdjustedQty, in.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submit a draft plan for approval
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Plan ID"
// @Success      200  {object}  dto.DemandPlanResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id}/submit [post]
func (h *DemandHandler) Submit(c *fiber.Ctx) error {
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
// @Summary      Approve a submitted plan
// @Tags         demand
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Plan ID"
// @Param        body  body  dto.PlanDecisionRequest  false  "Optional comments"
// @Success      200   {object}  dto.DemandPlanResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id}/approve [post]
func (h *DemandHandler) Approve(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.PlanDecisionRequest
	_ = c.BodyParser(&in) // body is optional
	out, err := h.uc.Approve(c.Context(), id, GetUserID(c), in.Comments)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Reject a submitted plan back to draft
// @Tags         demand
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Plan ID"
// @Param        body  body  dto.PlanDecisionRequest  false  "Optional comments"
// @Success      200   {object}  dto.DemandPlanResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id}/reject [post]
func (h *DemandHandler) Reject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.PlanDecisionRequest
	_ = c.BodyParser(&in) // body is optional
	out, err := h.uc.Reject(c.Context(), id, in.Comments)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a demand plan
// @Tags         demand
// @Security     Bearer
// @Param        id  path  int  true  "Plan ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/demand-plans/{id} [delete]
func (h *DemandHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      List demand plans
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int     false  "Product filter"
// @Param        status       query  string  false  "Status filter"
// @Param        region       query  string  false  "Region filter"
// @Param        channel      query  string  false  "Channel filter"
// @Param        period_from  query  string  false  "Period lower bound (RFC 3339)"
// @Param        period_to    query  string  false  "Period upper bound (RFC 3339)"
// @Param        page         query  int     false  "Page"       default(1)
// @Param        page_size    query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.DemandPlanResponse]
// @Router       /api/v1/demand-plans [get]
func (h *DemandHandler) List(c *fiber.Ctx) error {
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
