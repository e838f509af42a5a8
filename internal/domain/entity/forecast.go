package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Forecast model types. The registry in the forecasting usecase decides which
// of these are actually runnable server-side.
const (
	ModelMovingAverage = "moving_average"
	ModelExpSmoothing  = "exp_smoothing"
	ModelARIMA         = "arima"
	ModelProphet       = "prophet"
	ModelMLEnsemble    = "ml_ensemble"
)

// Forecast is one predicted product/period quantity produced by a model run.
type Forecast struct {
	ID           int64
	ProductID    int64
	ModelType    string
	Period       time.Time
	PredictedQty decimal.Decimal
	LowerBound   *decimal.Decimal
	UpperBound   *decimal.Decimal
	Confidence   *decimal.Decimal // percent
	MAPE         *decimal.Decimal
	RMSE         *decimal.Decimal
	ModelVersion string
	TrainingDate *time.Time
	CreatedAt    time.Time
}
