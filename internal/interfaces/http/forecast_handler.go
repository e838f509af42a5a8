package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
)

// ForecastHandler handles forecast generation, listing, model metadata,
// accuracy reporting and anomaly detection.
type ForecastHandler struct {
	uc *usecase.ForecastUseCase
}

// NewForecastHandler builds the handler.
func NewForecastHandler(uc *usecase.ForecastUseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Generate godoc
// @Summary      Generate forecasts for a product
// @Tags         forecasting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateForecastRequest  true  "Product, model and horizon"
// @Success      201   {object}  dto.GenerateForecastResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/forecasts/generate [post]
func (h *ForecastHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateForecastRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.Generate(c.Context(), in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List stored forecasts
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int     false  "Product filter"
// @Param        model_type   query  string  false  "Model filter"
// @Param        period_from  query  string  false  "Period lower bound (RFC 3339)"
// @Param        period_to    query  string  false  "Period upper bound (RFC 3339)"
// @Success      200  {array}  dto.ForecastResponse
// @Router       /api/v1/forecasts [get]
func (h *ForecastHandler) List(c *fiber.Ctx) error {
	var f dto.ForecastFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a forecast by ID
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Forecast ID"
// @Success      200  {object}  dto.ForecastResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/forecasts/{id} [get]
func (h *ForecastHandler) Get(c *fiber.Ctx) error {
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

// Models godoc
// @Summary      Available forecasting models
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ForecastModelInfo
// @Router       /api/v1/forecasts/models [get]
func (h *ForecastHandler) Models(c *fiber.Ctx) error {
	return c.JSON(h.uc.Models())
}

// Accuracy godoc
// @Summary      Average forecast error per model
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  false  "Limit to one product"
// @Success      200  {array}  dto.ForecastAccuracyResponse
// @Router       /api/v1/forecasts/accuracy [get]
func (h *ForecastHandler) Accuracy(c *fiber.Ctx) error {
	var productID *int64
	if v := c.QueryInt("product_id", 0); v > 0 {
		id := int64(v)
		productID = &id
	}
	out, err := h.uc.Accuracy(c.Context(), productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Anomalies godoc
// @Summary      Detect demand anomalies in a product's history
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  true  "Product ID"
// @Success      200  {array}   usecase.Anomaly
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/forecasts/anomalies [get]
func (h *ForecastHandler) Anomalies(c *fiber.Ctx) error {
	productID := c.QueryInt("product_id", 0)
	if productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.DetectAnomalies(c.Context(), int64(productID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
