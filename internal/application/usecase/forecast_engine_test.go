package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

func monthlyHistory(start time.Time, values ...float64) []historyPoint {
	out := make([]historyPoint, len(values))
	for i, v := range values {
		out[i] = historyPoint{Period: start.AddDate(0, i, 0), Value: v}
	}
	return out
}

func TestMovingAverage_FlatHistory(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	history := monthlyHistory(start, 100, 100, 100, 100, 100, 100)

	points := movingAverageStrategy{}.Forecast(history, 3)
	require.Len(t, points, 3)

	for _, p := range points {
		// flat history, no trend: every period predicts the average
		assert.True(t, p.PredictedQty.Equal(decimal.NewFromInt(100)),
			"predicted %s", p.PredictedQty)
		// zero variance falls back to 10% of the average for the band
		assert.True(t, p.LowerBound.Equal(decimal.RequireFromString("80.4")),
			"lower %s", p.LowerBound)
		assert.True(t, p.UpperBound.Equal(decimal.RequireFromString("119.6")),
			"upper %s", p.UpperBound)
		assert.True(t, p.Confidence.Equal(decimal.NewFromInt(80)))
	}

	// periods continue monthly after the last observation
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), points[0].Period)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), points[2].Period)
}

func TestMovingAverage_BoundsBracketPrediction(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	history := monthlyHistory(start, 90, 110, 95, 120, 105, 115)

	points := movingAverageStrategy{}.Forecast(history, 6)
	require.Len(t, points, 6)
	for i, p := range points {
		assert.True(t, p.LowerBound.LessThanOrEqual(p.PredictedQty), "point %d", i)
		assert.True(t, p.PredictedQty.LessThanOrEqual(p.UpperBound), "point %d", i)
	}
}

func TestMovingAverage_NegativeValuesClampToZero(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	history := monthlyHistory(start, 100, 10)

	points := movingAverageStrategy{}.Forecast(history, 4)
	require.Len(t, points, 4)

	// steep downward trend drives the raw prediction negative by the
	// fourth period; quantities never go below zero
	last := points[3]
	assert.True(t, last.PredictedQty.IsZero(), "predicted %s", last.PredictedQty)
	assert.True(t, last.LowerBound.IsZero(), "lower %s", last.LowerBound)
}

func TestExpSmoothing_TrendingHistory(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	history := monthlyHistory(start,
		10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120)

	points := expSmoothingStrategy{}.Forecast(history, 6)
	require.Len(t, points, 6)

	for i, p := range points {
		assert.True(t, p.Confidence.Equal(decimal.NewFromInt(85)), "point %d", i)
		assert.True(t, p.LowerBound.LessThanOrEqual(p.PredictedQty), "point %d", i)
		assert.True(t, p.PredictedQty.LessThanOrEqual(p.UpperBound), "point %d", i)
	}
	// positive trend keeps the damped forecast rising
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].PredictedQty.GreaterThan(points[i-1].PredictedQty),
			"point %d did not rise: %s <= %s", i, points[i].PredictedQty, points[i-1].PredictedQty)
	}
}

func TestExpSmoothing_ShortHistoryFallsBackToMovingAverage(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	history := monthlyHistory(start, 100, 100, 100)

	points := expSmoothingStrategy{}.Forecast(history, 2)
	require.Len(t, points, 2)
	// the moving average fallback reports its own confidence
	assert.True(t, points[0].Confidence.Equal(decimal.NewFromInt(80)))
}

func TestBestStrategy_SelectsByHistoryLength(t *testing.T) {
	cases := []struct {
		historyLen int
		want       string
	}{
		{3, entity.ModelMovingAverage},
		{11, entity.ModelMovingAverage},
		{12, entity.ModelExpSmoothing},
		{36, entity.ModelExpSmoothing},
	}
	for _, tc := range cases {
		got := bestStrategy(tc.historyLen)
		assert.Equal(t, tc.want, got.ModelID(), "historyLen %d", tc.historyLen)
	}
}

func TestStrategyFor_MLModelsAreAdvertisedButUnavailable(t *testing.T) {
	assert.NotNil(t, strategyFor(entity.ModelMovingAverage))
	assert.NotNil(t, strategyFor(entity.ModelExpSmoothing))

	assert.Nil(t, strategyFor(entity.ModelARIMA))
	assert.Nil(t, strategyFor(entity.ModelProphet))
	assert.Nil(t, strategyFor(entity.ModelMLEnsemble))
	assert.Nil(t, strategyFor("no_such_model"))
}
