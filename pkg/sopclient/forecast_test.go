package sopclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestForecastGenerate_FlattensEnvelope(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"product_id": 10,
			"model_type": "holt",
			"periods_ahead": 3,
			"history_points": 24,
			"forecasts": [
				{"id":1,"period":"2026-09-01","predicted_qty":"120.5","lower_bound":"100","upper_bound":"141"},
				{"id":2,"period":"2026-10-01","predicted_qty":"125","lower_bound":"102","upper_bound":"148"},
				{"id":3,"period":"2026-11-01","predicted_qty":"130.25","lower_bound":"104","upper_bound":"156"}
			]
		}`))
	}))

	forecasts, err := sopclient.NewForecastService(c).Generate(context.Background(), sopclient.GenerateOptions{
		ProductID:    10,
		PeriodsAhead: 3,
	})
	require.NoError(t, err)
	require.Len(t, forecasts, 3)

	// model type not sent means the server auto-selects
	_, sent := gotBody["model_type"]
	assert.False(t, sent)
	assert.Equal(t, float64(10), gotBody["product_id"])

	// each flattened record carries the model the server actually ran
	for _, f := range forecasts {
		assert.Equal(t, "holt", f.ModelType)
		assert.Equal(t, int64(10), f.ProductID)
	}
	assert.Equal(t, 120.5, forecasts[0].PredictedQty.Value)
	assert.Equal(t, "2026-11-01", forecasts[2].Period)
}

func TestForecastAccuracy_RemapsAndZeroFills(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `[
		{"model_type":"holt","avg_mape":"12.34","sample_count":6},
		{"model_type":"moving_average","avg_mape":null,"sample_count":0}
	]`))

	rows, err := sopclient.NewForecastService(c).Accuracy(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, sopclient.ModelAccuracy{
		ModelType:   "holt",
		MAPE:        12.34,
		Bias:        0,
		RMSE:        0,
		MAE:         0,
		HitRate:     0,
		PeriodCount: 6,
	}, rows[0])

	// null avg_mape lands as 0, never an error
	assert.Equal(t, 0.0, rows[1].MAPE)
}

func TestForecastResults_BareArray(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `[
		{"id":1,"product_id":10,"model_type":"holt","period":"2026-09-01","predicted_qty":"100"}
	]`))

	page, err := sopclient.NewForecastService(c).Results(context.Background(), sopclient.ForecastListOptions{ProductID: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "holt", page.Items[0].ModelType)
}

func TestForecastAnomalies_SendsProductID(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"period":"2026-03-01T00:00:00Z","value":"900","mean":"420","z_score":"3.4","severity":"high","direction":"spike","suggested_action":"Review for promotions or one-off orders"}
		]`))
	}))

	anomalies, err := sopclient.NewForecastService(c).Anomalies(context.Background(), 10)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "product_id=10")
	require.Len(t, anomalies, 1)
	assert.Equal(t, "spike", anomalies[0].Direction)
	assert.Equal(t, 900.0, anomalies[0].ActualQty.Value)
	assert.Equal(t, 420.0, anomalies[0].Mean.Value)
	assert.Equal(t, 3.4, anomalies[0].ZScore.Value)
	assert.Equal(t, "Review for promotions or one-off orders", anomalies[0].Action)
}
