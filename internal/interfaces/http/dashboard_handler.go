package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/analytics"
)

// DashboardHandler serves the landing page aggregates.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Cross-module dashboard summary
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Combined inventory and KPI alerts
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardAlertsResponse
// @Router       /api/v1/dashboard/alerts [get]
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.GetAlerts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SOPStatus godoc
// @Summary      Active cycle widget for the dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SOPStatusResponse
// @Router       /api/v1/dashboard/sop-status [get]
func (h *DashboardHandler) SOPStatus(c *fiber.Ctx) error {
	out, err := h.uc.GetSOPStatus(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
