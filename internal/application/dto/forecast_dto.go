package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// GenerateForecastRequest runs a model for a product. ModelType empty means
// auto-select by history length. PeriodsAhead defaults to 3.
type GenerateForecastRequest struct {
	ProductID    int64  `json:"product_id" validate:"required"`
	ModelType    string `json:"model_type"`
	PeriodsAhead int    `json:"periods_ahead"`
}

// ForecastResponse is one predicted product/period quantity.
type ForecastResponse struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"product_id"`
	ModelType    string           `json:"model_type"`
	Period       time.Time        `json:"period"`
	PredictedQty decimal.Decimal  `json:"predicted_qty"`
	LowerBound   *decimal.Decimal `json:"lower_bound"`
	UpperBound   *decimal.Decimal `json:"upper_bound"`
	Confidence   *decimal.Decimal `json:"confidence"`
	MAPE         *decimal.Decimal `json:"mape"`
	RMSE         *decimal.Decimal `json:"rmse"`
	ModelVersion string           `json:"model_version"`
	TrainingDate *time.Time       `json:"training_date"`
	CreatedAt    time.Time        `json:"created_at"`
}

func ForecastToResponse(f *entity.Forecast) ForecastResponse {
	return ForecastResponse{
		ID:           f.ID,
		ProductID:    f.ProductID,
		ModelType:    f.ModelType,
		Period:       f.Period,
		PredictedQty: f.PredictedQty,
		LowerBound:   f.LowerBound,
		UpperBound:   f.UpperBound,
		Confidence:   f.Confidence,
		MAPE:         f.MAPE,
		RMSE:         f.RMSE,
		ModelVersion: f.ModelVersion,
		TrainingDate: f.TrainingDate,
		CreatedAt:    f.CreatedAt,
	}
}

// GenerateForecastResponse is the outcome of one model run.
type GenerateForecastResponse struct {
	ProductID     int64              `json:"product_id"`
	ModelType     string             `json:"model_type"`
	PeriodsAhead  int                `json:"periods_ahead"`
	HistoryPoints int                `json:"history_points"`
	Forecasts     []ForecastResponse `json:"forecasts"`
}

// ForecastModelInfo describes one entry of the model registry.
type ForecastModelInfo struct {
	ModelType   string `json:"model_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	MinHistory  int    `json:"min_history"`
}

// ForecastAccuracyResponse aggregates model error over stored runs.
type ForecastAccuracyResponse struct {
	ProductID   *int64          `json:"product_id"`
	ModelType   string          `json:"model_type"`
	AvgMAPE     decimal.Decimal `json:"avg_mape"`
	SampleCount int             `json:"sample_count"`
}

// ForecastFilterRequest narrows forecast listings.
type ForecastFilterRequest struct {
	ProductID  *int64     `query:"product_id"`
	ModelType  string     `query:"model_type"`
	PeriodFrom *time.Time `query:"period_from"`
	PeriodTo   *time.Time `query:"period_to"`
}
