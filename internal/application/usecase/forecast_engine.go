package usecase

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// forecastPoint is one predicted period produced by a strategy.
type forecastPoint struct {
	Period       time.Time
	PredictedQty decimal.Decimal
	LowerBound   decimal.Decimal
	UpperBound   decimal.Decimal
	Confidence   decimal.Decimal
}

// historyPoint is one observed period fed into a strategy.
type historyPoint struct {
	Period time.Time
	Value  float64
}

// forecastStrategy is one runnable forecasting algorithm.
type forecastStrategy interface {
	ModelID() string
	DisplayName() string
	MinHistory() int
	Forecast(history []historyPoint, horizon int) []forecastPoint
}

// modelRegistry lists every known model. Only the statistical models run
// in-process; the ML entries are advertised but unavailable.
var modelRegistry = []struct {
	ID          string
	Name        string
	Description string
	MinHistory  int
	Strategy    forecastStrategy
}{
	{entity.ModelMovingAverage, "Moving Average", "Weighted moving average with trend extrapolation", 3, movingAverageStrategy{}},
	{entity.ModelExpSmoothing, "Exponential Smoothing (Holt)", "Double exponential smoothing with damped trend", 12, expSmoothingStrategy{}},
	{entity.ModelARIMA, "ARIMA", "Autoregressive integrated moving average", 24, nil},
	{entity.ModelProphet, "Prophet", "Additive seasonality model", 24, nil},
	{entity.ModelMLEnsemble, "ML Ensemble", "Blend of statistical and ML models", 36, nil},
}

// strategyFor returns the runnable strategy for a model ID, or nil.
func strategyFor(modelID string) forecastStrategy {
	for _, m := range modelRegistry {
		if m.ID == modelID {
			return m.Strategy
		}
	}
	return nil
}

// bestStrategy auto-selects by history length: a year or more of actuals gets
// smoothing, anything shorter the moving average.
func bestStrategy(historyLen int) forecastStrategy {
	if historyLen >= 12 {
		return expSmoothingStrategy{}
	}
	return movingAverageStrategy{}
}

// nextPeriods generates monthly periods starting after the last observation.
func nextPeriods(history []historyPoint, horizon int) []time.Time {
	last := time.Now().UTC()
	last = time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	if len(history) > 0 {
		last = history[len(history)-1].Period
	}
	out := make([]time.Time, horizon)
	for i := range out {
		out[i] = last.AddDate(0, i+1, 0)
	}
	return out
}

func sampleStd(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(n-1))
}

func toQty(v float64) decimal.Decimal {
	if v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v).Round(2)
}

// movingAverageStrategy weights the last six observations linearly and
// extrapolates a damped trend.
type movingAverageStrategy struct{}

func (movingAverageStrategy) ModelID() string     { return entity.ModelMovingAverage }
func (movingAverageStrategy) DisplayName() string { return "Moving Average" }
func (movingAverageStrategy) MinHistory() int     { return 3 }

func (s movingAverageStrategy) Forecast(history []historyPoint, horizon int) []forecastPoint {
	n := len(history)
	window := 6
	if n < window {
		window = n
	}
	var weightedSum, weightTotal float64
	for i := 0; i < window; i++ {
		w := float64(i + 1)
		weightedSum += history[n-window+i].Value * w
		weightTotal += w
	}
	avg := weightedSum / weightTotal

	trend := 0.0
	if n >= 2 {
		trend = (history[n-1].Value - history[n-2].Value) * 0.3
	}

	values := make([]float64, n)
	for i, h := range history {
		values[i] = h.Value
	}
	std := sampleStd(values)
	if std == 0 {
		std = avg * 0.1
	}

	periods := nextPeriods(history, horizon)
	out := make([]forecastPoint, horizon)
	for i, p := range periods {
		center := avg + trend*float64(i+1)*0.5
		out[i] = forecastPoint{
			Period:       p,
			PredictedQty: toQty(center),
			LowerBound:   toQty(center - 1.96*std),
			UpperBound:   decimal.NewFromFloat(center + 1.96*std).Round(2),
			Confidence:   decimal.NewFromInt(80),
		}
	}
	return out
}

// expSmoothingStrategy is Holt's double exponential smoothing with a damped
// additive trend. Short histories fall back to the moving average.
type expSmoothingStrategy struct{}

func (expSmoothingStrategy) ModelID() string     { return entity.ModelExpSmoothing }
func (expSmoothingStrategy) DisplayName() string { return "Exponential Smoothing (Holt)" }
func (expSmoothingStrategy) MinHistory() int     { return 12 }

func (s expSmoothingStrategy) Forecast(history []historyPoint, horizon int) []forecastPoint {
	if len(history) < 4 {
		return movingAverageStrategy{}.Forecast(history, horizon)
	}

	const (
		alpha = 0.3
		beta  = 0.1
		phi   = 0.98
	)

	level := history[0].Value
	trend := history[1].Value - history[0].Value
	residuals := make([]float64, 0, len(history)-1)
	for _, h := range history[1:] {
		fitted := level + phi*trend
		residuals = append(residuals, h.Value-fitted)
		newLevel := alpha*h.Value + (1-alpha)*(level+phi*trend)
		trend = beta*(newLevel-level) + (1-beta)*phi*trend
		level = newLevel
	}
	std := sampleStd(residuals)

	periods := nextPeriods(history, horizon)
	out := make([]forecastPoint, horizon)
	damp := phi
	for i, p := range periods {
		center := level + damp*trend
		out[i] = forecastPoint{
			Period:       p,
			PredictedQty: toQty(center),
			LowerBound:   toQty(center - 1.96*std),
			UpperBound:   decimal.NewFromFloat(center + 1.96*std).Round(2),
			Confidence:   decimal.NewFromInt(85),
		}
		damp += math.Pow(phi, float64(i+2))
	}
	return out
}
