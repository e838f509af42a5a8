package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// SOPHandler handles the monthly S&OP cycle endpoints.
type SOPHandler struct {
	uc *usecase.SOPCycleUseCase
}

// NewSOPHandler builds the handler.
func NewSOPHandler(uc *usecase.SOPCycleUseCase) *SOPHandler {
	return &SOPHandler{uc: uc}
}

// Create godoc
// @Summary      Open a new S&OP cycle
// @Tags         sop
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSOPCycleRequest  true  "Cycle data"
// @Success      201   {object}  dto.SOPCycleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles [post]
func (h *SOPHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSOPCycleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.CycleName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cycle_name is required"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a cycle by ID
// @Tags         sop
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Cycle ID"
// @Success      200  {object}  dto.SOPCycleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles/{id} [get]
func (h *SOPHandler) Get(c *fiber.Ctx) error {
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

// GetActive godoc
// @Summary      The currently active cycle, or null
// @Tags         sop
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SOPCycleResponse
// @Router       /api/v1/sop-cycles/active [get]
func (h *SOPHandler) GetActive(c *fiber.Ctx) error {
	out, err := h.uc.GetActive(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update cycle decisions, action items or notes
// @Tags         sop
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Cycle ID"
// @Param        body  body  dto.UpdateSOPCycleRequest  true  "Fields to update"
// @Success      200   {object}  dto.SOPCycleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles/{id} [put]
func (h *SOPHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateSOPCycleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AdvanceStep godoc
// @Summary      Complete the current step and move to the next
// @Tags         sop
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Cycle ID"
// @Success      200  {object}  dto.SOPCycleResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles/{id}/advance [post]
func (h *SOPHandler) AdvanceStep(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AdvanceStep(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Close out the cycle
// @Tags         sop
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Cycle ID"
// @Success      200  {object}  dto.SOPCycleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles/{id}/complete [post]
func (h *SOPHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Complete(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List cycles
// @Tags         sop
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Overall status filter"
// @Param        page       query  int     false  "Page"       default(1)
// @Param        page_size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.SOPCycleResponse]
// @Router       /api/v1/sop-cycles [get]
func (h *SOPHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Download the cycle summary as PDF
// @Tags         sop
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "Cycle ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/sop-cycles/{id}/report [get]
func (h *SOPHandler) Report(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	pdf, err := h.uc.Report(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="sop-cycle-%d.pdf"`, id))
	return c.Send(pdf)
}
