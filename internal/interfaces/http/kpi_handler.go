package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// KPIHandler handles KPI measurements, the category dashboard, trends,
// alerts and target management.
type KPIHandler struct {
	uc *usecase.KPIUseCase
}

// NewKPIHandler builds the handler.
func NewKPIHandler(uc *usecase.KPIUseCase) *KPIHandler {
	return &KPIHandler{uc: uc}
}

// Create godoc
// @Summary      Record a KPI measurement
// @Tags         kpi
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKPIMetricRequest  true  "Measurement"
// @Success      201   {object}  dto.KPIMetricResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/kpis [post]
func (h *KPIHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKPIMetricRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MetricName == "" || in.MetricCategory == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "metric_name and metric_category are required"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Get a measurement by ID
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Measurement ID"
// @Success      200  {object}  dto.KPIMetricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/kpis/{id} [get]
func (h *KPIHandler) Get(c *fiber.Ctx) error {
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

// List godoc
// @Summary      List measurements
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "Category filter"
// @Param        name       query  string  false  "Metric name filter"
// @Param        period     query  string  false  "Exact period (RFC 3339)"
// @Param        page       query  int     false  "Page"       default(1)
// @Param        page_size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.KPIMetricResponse]
// @Router       /api/v1/kpis [get]
func (h *KPIHandler) List(c *fiber.Ctx) error {
	var period *time.Time
	if raw := c.Query("period"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "period must be RFC 3339"})
		}
		period = &t
	}
	out, err := h.uc.List(c.Context(), c.Query("category"), c.Query("name"), period, pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Latest KPIs grouped by category
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIDashboardResponse
// @Router       /api/v1/kpis/dashboard [get]
func (h *KPIHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Trends godoc
// @Summary      Per-metric time series over recent months
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Category filter"
// @Param        months    query  int     false  "Lookback window"  default(12)
// @Success      200  {array}  dto.KPITrendResponse
// @Router       /api/v1/kpis/trends [get]
func (h *KPIHandler) Trends(c *fiber.Ctx) error {
	out, err := h.uc.Trends(c.Context(), c.Query("category"), c.QueryInt("months", 12))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Metrics off target beyond the alert thresholds
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.KPIAlertResponse
// @Router       /api/v1/kpis/alerts [get]
func (h *KPIHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetTarget godoc
// @Summary      Re-target the latest measurement of a metric
// @Tags         kpi
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetKPITargetRequest  true  "Metric name and target"
// @Success      200   {object}  dto.KPIMetricResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/kpis/targets [put]
func (h *KPIHandler) SetTarget(c *fiber.Ctx) error {
	var in dto.SetKPITargetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MetricName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "metric_name is required"})
	}
	out, err := h.uc.SetTarget(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
