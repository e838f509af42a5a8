package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// ScenarioHandler handles what-if scenario CRUD, runs and comparison.
type ScenarioHandler struct {
	uc *usecase.ScenarioUseCase
}

// NewScenarioHandler builds the handler.
func NewScenarioHandler(uc *usecase.ScenarioUseCase) *ScenarioHandler {
	return &ScenarioHandler{uc: uc}
}

// Create godoc
// @Summary      Create a scenario
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateScenarioRequest  true  "Scenario data"
// @Success      201   {object}  dto.ScenarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios [post]
func (h *ScenarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateScenarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a scenario by ID
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Scenario ID"
// @Success      200  {object}  dto.ScenarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id} [get]
func (h *ScenarioHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Update a scenario
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Scenario ID"
// @Param        body  body  dto.UpdateScenarioRequest  true  "Fields to update"
// @Success      200   {object}  dto.ScenarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id} [put]
func (h *ScenarioHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateScenarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a scenario
// @Tags         scenarios
// @Security     Bearer
// @Param        id  path  int  true  "Scenario ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id} [delete]
func (h *ScenarioHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      List scenarios
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Status filter"
// @Param        page       query  int     false  "Page"       default(1)
// @Param        page_size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.ScenarioResponse]
// @Router       /api/v1/scenarios [get]
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Run godoc
// @Summary      Run a scenario simulation
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Scenario ID"
// @Success      200  {object}  dto.ScenarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id}/run [post]
func (h *ScenarioHandler) Run(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Run(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submit a scenario for review
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Scenario ID"
// @Success      200  {object}  dto.ScenarioResponse
// @Router       /api/v1/scenarios/{id}/submit [post]
func (h *ScenarioHandler) Submit(c *fiber.Ctx) error {
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
// @Summary      Approve a scenario
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Scenario ID"
// @Success      200  {object}  dto.ScenarioResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id}/approve [post]
func (h *ScenarioHandler) Approve(c *fiber.Ctx) error {
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

// Reject godoc
// @Summary      Reject a scenario
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Scenario ID"
// @Success      200  {object}  dto.ScenarioResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/{id}/reject [post]
func (h *ScenarioHandler) Reject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Reject(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Compare godoc
// @Summary      Compare scenarios side by side
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompareScenariosRequest  true  "Scenario IDs"
// @Success      200   {array}   dto.ScenarioComparisonItem
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/scenarios/compare [post]
func (h *ScenarioHandler) Compare(c *fiber.Ctx) error {
	var in dto.CompareScenariosRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.ScenarioIDs) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at least two scenario_ids are required"})
	}
	out, err := h.uc.Compare(c.Context(), in.ScenarioIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
